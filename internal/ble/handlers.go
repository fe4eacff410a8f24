package ble

// Handlers is the capability set the application implements to observe the
// connection and security lifecycle. Any handler may be nil. Handlers can
// be invoked from the host stack's goroutine.
type Handlers struct {
	// OnConnect fires when a central connects.
	OnConnect func()

	// OnDisconnect fires when the central drops; the stack reports no
	// reason on this platform.
	OnDisconnect func()

	// OnPairingRequest receives the 6-digit passkey to display and reports
	// whether pairing should proceed.
	OnPairingRequest func(passkey string, matchRequest bool) bool

	// OnSecured fires once the link is encrypted and authenticated.
	OnSecured func()
}
