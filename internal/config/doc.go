// Package config loads and validates the key fob bridge configuration.
//
// Configuration is resolved in three layers: compiled-in defaults, an
// optional YAML file
// (config/default.yaml, or the file named by KFC_CONFIG), and KFC_*
// environment variable overrides. The merged result is validated before
// any hardware is touched.
package config
