// Package actuator drives the optocoupler outputs that press the key fob
// buttons.
//
// A press is a fixed-duration pulse: the button's GPIO line is driven HIGH,
// held, then driven LOW, with the status indicator bracketing the pulse and
// progress text emitted to the diagnostic and remote sinks. A mutex
// serializes presses so that callers on the BLE stack's goroutine and the
// main loop can never overlap pulses on the shared lines.
//
// Pin writes go through the narrow Output interface so tests can observe
// transitions without hardware; real pins come from periph.io's registry
// via PinByName.
package actuator
