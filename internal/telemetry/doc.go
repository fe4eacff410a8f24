// Package telemetry distributes device lifecycle events to in-process
// subscribers.
//
// The hub stamps every published event with a monotonic ID, keeps a small
// replay ring so late subscribers can catch up, and fans events out over
// buffered channels. Publishing never blocks: a subscriber that is not
// keeping up loses events rather than stalling a pulse.
package telemetry
