package actuator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/keyfob-control/kfc/internal/actuator/fake"
)

// newTestDriver builds a driver with recording pins and an instant sleep
// that captures requested durations.
func newTestDriver(rec *fake.Recorder) (*Driver, *fake.Pin, *fake.Pin, *[]time.Duration) {
	status := rec.Pin("status")
	lock := rec.Pin("lock")

	var slept []time.Duration
	var mu sync.Mutex

	d := NewDriver(300*time.Millisecond, status, fake.NewSink(), nil)
	d.sleep = func(dur time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		slept = append(slept, dur)
	}
	d.Wire(ButtonLock, lock, "Locking...", "Locked!")

	return d, lock, status, &slept
}

func TestPressTransitions(t *testing.T) {
	rec := fake.NewRecorder()
	d, lock, status, slept := newTestDriver(rec)

	if err := d.Press(context.Background(), ButtonLock); err != nil {
		t.Fatalf("Press: %v", err)
	}

	wantLock := []gpio.Level{gpio.High, gpio.Low}
	got := lock.Transitions()
	if len(got) != len(wantLock) {
		t.Fatalf("lock transitions = %v, want %v", got, wantLock)
	}
	for i := range wantLock {
		if got[i] != wantLock[i] {
			t.Errorf("lock transition %d = %v, want %v", i, got[i], wantLock[i])
		}
	}

	if status.Level() != gpio.Low {
		t.Error("status indicator not restored LOW after press")
	}

	if len(*slept) != 1 || (*slept)[0] != 300*time.Millisecond {
		t.Errorf("hold durations = %v, want [300ms]", *slept)
	}

	// Status must bracket the pulse: status HIGH, pin HIGH, pin LOW, status LOW.
	want := []string{"status:High", "lock:High", "lock:Low", "status:Low"}
	events := rec.Events()
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, events[i], want[i])
		}
	}
}

func TestPressAnnouncesProgress(t *testing.T) {
	sink := fake.NewSink()
	d := NewDriver(300*time.Millisecond, nil, sink, nil)
	d.sleep = func(time.Duration) {}
	d.Wire(ButtonUnlock, fake.NewPin("unlock"), "Unlocking...", "Unlocked!")

	if err := d.Press(context.Background(), ButtonUnlock); err != nil {
		t.Fatalf("Press: %v", err)
	}

	lines := sink.Lines()
	if len(lines) != 2 || lines[0] != "Unlocking..." || lines[1] != "Unlocked!" {
		t.Errorf("progress lines = %v", lines)
	}
}

func TestPressUnknownButton(t *testing.T) {
	d := NewDriver(300*time.Millisecond, nil, nil, nil)

	err := d.Press(context.Background(), ButtonUnlock)
	if !errors.Is(err, ErrUnknownButton) {
		t.Errorf("Press on unwired button = %v, want ErrUnknownButton", err)
	}
}

func TestPressCancelledContext(t *testing.T) {
	rec := fake.NewRecorder()
	d, lock, _, _ := newTestDriver(rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := d.Press(ctx, ButtonLock); err == nil {
		t.Fatal("Press with cancelled context succeeded")
	}
	if len(lock.Transitions()) != 0 {
		t.Errorf("cancelled press touched the pin: %v", lock.Transitions())
	}
}

func TestPressRestoresStatusOnError(t *testing.T) {
	rec := fake.NewRecorder()
	status := rec.Pin("status")
	lock := fake.NewPin("lock")
	lock.SetFailWrites(true)

	d := NewDriver(300*time.Millisecond, status, nil, nil)
	d.sleep = func(time.Duration) {}
	d.Wire(ButtonLock, lock, "Locking...", "Locked!")

	if err := d.Press(context.Background(), ButtonLock); err == nil {
		t.Fatal("Press with failing pin succeeded")
	}
	if status.Level() != gpio.Low {
		t.Error("status indicator left HIGH after failed press")
	}
}

func TestPressesDoNotInterleave(t *testing.T) {
	rec := fake.NewRecorder()
	status := rec.Pin("status")
	lock := rec.Pin("lock")
	unlock := rec.Pin("unlock")

	d := NewDriver(300*time.Millisecond, status, nil, nil)
	d.sleep = func(time.Duration) {}
	d.Wire(ButtonLock, lock, "", "")
	d.Wire(ButtonUnlock, unlock, "", "")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		b := ButtonLock
		if i%2 == 1 {
			b = ButtonUnlock
		}
		go func() {
			defer wg.Done()
			if err := d.Press(context.Background(), b); err != nil {
				t.Errorf("Press: %v", err)
			}
		}()
	}
	wg.Wait()

	events := rec.Events()
	if len(events)%4 != 0 {
		t.Fatalf("event count %d is not a multiple of 4: %v", len(events), events)
	}

	// Every block of four events must be one complete pulse: the second's
	// transitions begin only after the first's LOW transition completed.
	for i := 0; i < len(events); i += 4 {
		pin := events[i+1][:len(events[i+1])-len(":High")]
		want := []string{"status:High", pin + ":High", pin + ":Low", "status:Low"}
		for j := range want {
			if events[i+j] != want[j] {
				t.Fatalf("pulse at %d interleaved: %v", i, events[i:i+4])
			}
		}
	}
}

func TestBlink(t *testing.T) {
	rec := fake.NewRecorder()
	status := rec.Pin("status")

	d := NewDriver(300*time.Millisecond, status, nil, nil)

	var slept []time.Duration
	d.sleep = func(dur time.Duration) { slept = append(slept, dur) }

	d.Blink(3, 200*time.Millisecond)

	if got := len(status.Transitions()); got != 6 {
		t.Errorf("blink wrote %d transitions, want 6", got)
	}
	if len(slept) != 6 {
		t.Errorf("blink slept %d times, want 6", len(slept))
	}
	for _, dur := range slept {
		if dur != 200*time.Millisecond {
			t.Errorf("blink interval = %v, want 200ms", dur)
		}
	}
	if status.Level() != gpio.Low {
		t.Error("status indicator left HIGH after blink")
	}
}

func TestAllLow(t *testing.T) {
	rec := fake.NewRecorder()
	status := rec.Pin("status")
	lock := rec.Pin("lock")
	unlock := rec.Pin("unlock")

	d := NewDriver(300*time.Millisecond, status, nil, nil)
	d.Wire(ButtonLock, lock, "", "")
	d.Wire(ButtonUnlock, unlock, "", "")

	if err := d.AllLow(); err != nil {
		t.Fatalf("AllLow: %v", err)
	}

	for name, pin := range map[string]*fake.Pin{"status": status, "lock": lock, "unlock": unlock} {
		if pin.Level() != gpio.Low {
			t.Errorf("%s pin not LOW after AllLow", name)
		}
	}
}
