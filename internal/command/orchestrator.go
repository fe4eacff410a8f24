package command

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/keyfob-control/kfc/internal/actuator"
	"github.com/keyfob-control/kfc/internal/telemetry"
)

// Orchestrator routes interpreted command lines to the pulse driver.
type Orchestrator struct {
	// Line classifier for the active profile
	interpreter *Interpreter

	// Southbound pulse driver
	driver PulseDriver

	// Remote text stream back to the peer
	remote RemoteSink

	// Telemetry hub for event publishing
	telemetryHub *telemetry.Hub

	// Audit logger
	auditLogger AuditLogger

	// Diagnostic stream
	log *slog.Logger
}

// Compile-time assertion that actuator.Driver implements PulseDriver
var _ PulseDriver = (*actuator.Driver)(nil)

// NewOrchestrator creates a new command orchestrator.
func NewOrchestrator(interpreter *Interpreter, driver PulseDriver, telemetryHub *telemetry.Hub, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		interpreter:  interpreter,
		driver:       driver,
		telemetryHub: telemetryHub,
		log:          log,
	}
}

// SetRemoteSink sets the remote text stream.
func (o *Orchestrator) SetRemoteSink(remote RemoteSink) {
	o.remote = remote
}

// SetAuditLogger sets the audit logger.
func (o *Orchestrator) SetAuditLogger(logger AuditLogger) {
	o.auditLogger = logger
}

// HandleLine processes one incoming command line to completion. Lines are
// handled strictly in call order; a press blocks until its pulse finishes.
func (o *Orchestrator) HandleLine(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	o.log.Info("received", "line", line)

	action := o.interpreter.Interpret(line)
	switch action {
	case ActionNone:
		// Silent: either noise or an unmatched controller code.

	case ActionHelp:
		o.replyUsage()

	case ActionUnassigned:
		o.log.Info("button not assigned")
		o.logAudit(ctx, action.String(), "", "NOT_ASSIGNED", 0)

	case ActionPressPrimary:
		o.press(ctx, action, actuator.ButtonPrimary)

	case ActionPressLock:
		o.press(ctx, action, actuator.ButtonLock)

	case ActionPressUnlock:
		o.press(ctx, action, actuator.ButtonUnlock)
	}
}

// press executes one pulse through the driver with audit and telemetry.
func (o *Orchestrator) press(ctx context.Context, action Action, b actuator.Button) {
	start := time.Now()

	o.publishEvent("pulseStarted", map[string]interface{}{
		"button": string(b),
		"ts":     time.Now().UTC().Format(time.RFC3339),
	})

	err := o.driver.Press(ctx, b)
	latency := time.Since(start)

	if err != nil {
		o.log.Error("press failed", "button", string(b), "error", err)
		o.logAudit(ctx, action.String(), string(b), "ERROR", latency)
		o.publishEvent("fault", map[string]interface{}{
			"button":  string(b),
			"code":    err.Error(),
			"message": "failed to press button",
			"ts":      time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	o.logAudit(ctx, action.String(), string(b), "SUCCESS", latency)
	o.publishEvent("pulseCompleted", map[string]interface{}{
		"button":    string(b),
		"latencyMs": latency.Milliseconds(),
		"ts":        time.Now().UTC().Format(time.RFC3339),
	})
}

// replyUsage writes the usage hint to the remote stream.
func (o *Orchestrator) replyUsage() {
	if o.remote == nil {
		return
	}
	for _, line := range o.interpreter.Usage() {
		if err := o.remote.Println(line); err != nil {
			o.log.Warn("usage reply failed", "error", err)
			return
		}
	}
}

// HandleConnect greets a freshly connected peer with the usage banner.
func (o *Orchestrator) HandleConnect() {
	o.log.Info("peer connected")

	if o.remote != nil {
		for _, line := range o.interpreter.Welcome() {
			if err := o.remote.Println(line); err != nil {
				o.log.Warn("welcome banner failed", "error", err)
				break
			}
		}
	}

	o.publishEvent("connected", map[string]interface{}{
		"ts": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleDisconnect logs the disconnect. An in-flight pulse is not aborted;
// it completes its full hold on the driver's goroutine.
func (o *Orchestrator) HandleDisconnect() {
	o.log.Info("peer disconnected")

	o.publishEvent("disconnected", map[string]interface{}{
		"ts": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandlePairingRequest displays the passkey on both streams and accepts.
// Integrators wanting a rejection policy change it here.
func (o *Orchestrator) HandlePairingRequest(passkey string, matchRequest bool) bool {
	o.log.Info("pairing request", "passkey", passkey, "matchRequest", matchRequest)

	if o.remote != nil {
		if err := o.remote.Println("Pairing PIN: " + passkey); err != nil {
			o.log.Warn("passkey notification failed", "error", err)
		}
	}

	o.publishEvent("pairingRequested", map[string]interface{}{
		"ts": time.Now().UTC().Format(time.RFC3339),
	})

	return true
}

// HandleSecured logs that the link is encrypted and authenticated.
func (o *Orchestrator) HandleSecured() {
	o.log.Info("connection secured")

	if o.remote != nil {
		for _, line := range []string{">>> DEVICE PAIRED <<<", "Connection secured!"} {
			if err := o.remote.Println(line); err != nil {
				o.log.Warn("secured notification failed", "error", err)
				break
			}
		}
	}

	o.publishEvent("secured", map[string]interface{}{
		"ts": time.Now().UTC().Format(time.RFC3339),
	})
}

// publishEvent publishes a telemetry event, if a hub is wired.
func (o *Orchestrator) publishEvent(eventType string, data map[string]interface{}) {
	if o.telemetryHub == nil {
		return
	}

	if err := o.telemetryHub.Publish(telemetry.Event{Type: eventType, Data: data}); err != nil {
		o.log.Warn("telemetry publish failed", "type", eventType, "error", err)
	}
}

// logAudit writes an audit record for a command action.
func (o *Orchestrator) logAudit(ctx context.Context, action, button, result string, latency time.Duration) {
	if o.auditLogger != nil {
		o.auditLogger.LogAction(ctx, action, button, result, latency)
	}
}
