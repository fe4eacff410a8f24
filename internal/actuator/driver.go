package actuator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Button identifies a wired fob button.
type Button string

const (
	ButtonPrimary Button = "primary"
	ButtonLock    Button = "lock"
	ButtonUnlock  Button = "unlock"
)

// Output is the subset of periph.io's gpio.PinOut the driver needs.
type Output interface {
	Out(l gpio.Level) error
}

// Sink receives human-readable progress text for the remote peer.
type Sink interface {
	Println(line string) error
}

// Contact is a single wired button: its output line and the progress text
// announced around a press.
type Contact struct {
	Pin       Output
	StartText string
	DoneText  string
}

// Driver executes synchronous button pulses on the wired contacts.
type Driver struct {
	mu       sync.Mutex
	contacts map[Button]*Contact
	status   Output
	hold     time.Duration
	remote   Sink
	log      *slog.Logger

	// sleep is replaced in tests to avoid real delays.
	sleep func(time.Duration)
}

// NewDriver creates a pulse driver. The status output and remote sink may
// be nil; progress reporting is fire-and-forget.
func NewDriver(hold time.Duration, status Output, remote Sink, log *slog.Logger) *Driver {
	if log == nil {
		log = slog.Default()
	}
	return &Driver{
		contacts: make(map[Button]*Contact),
		status:   status,
		hold:     hold,
		remote:   remote,
		log:      log,
		sleep:    time.Sleep,
	}
}

// Wire registers a button contact with its output line and progress text.
func (d *Driver) Wire(b Button, pin Output, startText, doneText string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.contacts[b] = &Contact{
		Pin:       pin,
		StartText: startText,
		DoneText:  doneText,
	}
}

// Press pulses the button's output line HIGH for the hold duration, then
// LOW. The call is synchronous and uninterruptible once the line is driven;
// the driver's mutex guarantees the line is back LOW before the next press
// begins.
func (d *Driver) Press(ctx context.Context, b Button) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.contacts[b]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownButton, b)
	}

	d.log.Info("press started", "button", string(b))
	d.announce(c.StartText)

	d.setStatus(gpio.High)

	if err := c.Pin.Out(gpio.High); err != nil {
		d.setStatus(gpio.Low)
		return fmt.Errorf("drive %s high: %w", b, err)
	}

	d.sleep(d.hold)

	if err := c.Pin.Out(gpio.Low); err != nil {
		d.setStatus(gpio.Low)
		return fmt.Errorf("release %s: %w", b, err)
	}

	d.setStatus(gpio.Low)

	d.announce(c.DoneText)
	d.log.Info("press completed", "button", string(b))

	return nil
}

// Blink flashes the status indicator n times. Used for the boot pattern.
func (d *Driver) Blink(n int, interval time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status == nil {
		return
	}

	for i := 0; i < n; i++ {
		d.setStatus(gpio.High)
		d.sleep(interval)
		d.setStatus(gpio.Low)
		d.sleep(interval)
	}
}

// AllLow forces every wired output and the status indicator LOW. Called at
// startup and shutdown so no contact is left pressed.
func (d *Driver) AllLow() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var firstErr error
	for b, c := range d.contacts {
		if err := c.Pin.Out(gpio.Low); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("release %s: %w", b, err)
		}
	}
	if d.status != nil {
		if err := d.status.Out(gpio.Low); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("status indicator low: %w", err)
		}
	}
	return firstErr
}

// setStatus drives the status indicator, if one is wired.
func (d *Driver) setStatus(l gpio.Level) {
	if d.status == nil {
		return
	}
	if err := d.status.Out(l); err != nil {
		d.log.Warn("status indicator write failed", "error", err)
	}
}

// announce writes progress text to the remote sink, fire-and-forget.
func (d *Driver) announce(line string) {
	if d.remote == nil || line == "" {
		return
	}
	if err := d.remote.Println(line); err != nil {
		d.log.Warn("remote notification failed", "error", err)
	}
}
