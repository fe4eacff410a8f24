// Package audit writes an append-only JSONL trail of every command action
// the bridge executes: which button, on whose behalf, with what outcome,
// and how long the pulse took. Files rotate by size and age.
package audit
