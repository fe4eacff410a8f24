// Package command interprets incoming text lines and routes the resulting
// button actions to the actuator.
//
// The interpreter classifies a trimmed line against a profile-dependent
// vocabulary: BLE terminal controller codes (!B11..!B41), plain-word
// synonyms, a usage hint for unrecognized text, and silence for everything
// else. The orchestrator executes the action through the PulseDriver port,
// writes an audit record per press, and publishes telemetry events. It also
// implements the connection lifecycle handlers the BLE link invokes.
package command
