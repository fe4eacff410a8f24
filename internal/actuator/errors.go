package actuator

import "errors"

// ErrUnknownButton indicates a press was requested for a button that has
// no wired contact in the current profile.
var ErrUnknownButton = errors.New("UNKNOWN_BUTTON")

// ErrPinNotFound indicates a configured pin name is absent from the host's
// GPIO registry.
var ErrPinNotFound = errors.New("PIN_NOT_FOUND")
