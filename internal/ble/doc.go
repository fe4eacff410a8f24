// Package ble exposes the bridge as a BLE peripheral with a Nordic UART
// Service.
//
// Incoming GATT writes on the RX characteristic are framed into trimmed
// command lines and delivered in arrival order on a buffered channel the
// main loop consumes. Outgoing text goes out as TX notifications, chunked
// to the 20-byte ATT payload most terminal apps expect.
//
// Connection and security lifecycle events are surfaced through the
// Handlers capability set. Connect and disconnect come straight from the
// host stack; pairing passkey display and link-secured events enter through
// RequestPairing and NotifySecured, because the BlueZ backend delegates
// passkey handling to the system agent rather than a stack callback.
// Handlers may be invoked on the stack's own goroutine; anything they touch
// must tolerate that.
package ble
