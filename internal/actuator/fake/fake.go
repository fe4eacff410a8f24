// Package fake provides recording pin and sink implementations for testing
// the pulse driver and command orchestrator without hardware.
package fake

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
)

// Recorder collects pin transitions across multiple pins in the order they
// happen, so tests can assert that pulses never interleave.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

// NewRecorder creates an empty transition recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Pin creates a recording pin attached to this recorder.
func (r *Recorder) Pin(name string) *Pin {
	return &Pin{name: name, rec: r}
}

// Events returns the recorded transitions in order, formatted "name:level".
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) record(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Pin implements actuator.Output and records every level written to it.
type Pin struct {
	mu          sync.Mutex
	name        string
	rec         *Recorder
	transitions []gpio.Level
	failWrites  bool
}

// NewPin creates a standalone recording pin.
func NewPin(name string) *Pin {
	return &Pin{name: name}
}

// Out records the level transition.
func (p *Pin) Out(l gpio.Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failWrites {
		return fmt.Errorf("INTERNAL: simulated write failure on %s", p.name)
	}

	p.transitions = append(p.transitions, l)
	if p.rec != nil {
		p.rec.record(fmt.Sprintf("%s:%v", p.name, l))
	}
	return nil
}

// Transitions returns every level written to the pin, in order.
func (p *Pin) Transitions() []gpio.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]gpio.Level, len(p.transitions))
	copy(out, p.transitions)
	return out
}

// Level returns the last written level, or gpio.Low if never written.
func (p *Pin) Level() gpio.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.transitions) == 0 {
		return gpio.Low
	}
	return p.transitions[len(p.transitions)-1]
}

// SetFailWrites makes subsequent writes fail, for error path tests.
func (p *Pin) SetFailWrites(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failWrites = fail
}

// Sink implements actuator.Sink and records every line written to it.
type Sink struct {
	mu    sync.Mutex
	lines []string
}

// NewSink creates an empty recording sink.
func NewSink() *Sink {
	return &Sink{}
}

// Println records the line.
func (s *Sink) Println(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return nil
}

// Lines returns every recorded line, in order.
func (s *Sink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}
