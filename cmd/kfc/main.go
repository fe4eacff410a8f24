// Package main implements the key fob bridge entry point: a BLE UART
// peripheral that presses a car key fob's buttons through optocoupler
// outputs.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/keyfob-control/kfc/internal/actuator"
	"github.com/keyfob-control/kfc/internal/audit"
	"github.com/keyfob-control/kfc/internal/ble"
	"github.com/keyfob-control/kfc/internal/command"
	"github.com/keyfob-control/kfc/internal/config"
	"github.com/keyfob-control/kfc/internal/telemetry"
)

const Version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "kfc: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Step 1: Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	log := setupLogger(level)
	log.Info("starting key fob bridge", "version", Version, "profile", cfg.Profile)

	// Step 2: Initialize telemetry hub and its diagnostic subscriber
	telemetryHub := telemetry.NewHub(64)
	defer telemetryHub.Stop()

	events, err := telemetryHub.Subscribe("diagnostics", 16)
	if err != nil {
		return fmt.Errorf("failed to subscribe diagnostics: %w", err)
	}
	go logEvents(log, events)

	// Step 3: Initialize audit logger
	auditLogger, err := audit.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize audit logger: %w", err)
	}
	defer func() {
		if err := auditLogger.Close(); err != nil {
			log.Warn("error closing audit logger", "error", err)
		}
	}()
	log.Info("audit logger initialized", "path", auditLogger.GetFilePath())

	// Step 4: Resolve GPIO outputs
	if err := actuator.InitHost(); err != nil {
		return err
	}

	statusPin, err := actuator.PinByName(cfg.Pins.StatusLed)
	if err != nil {
		return err
	}

	// Step 5: Create the BLE UART service (remote text sink)
	link := ble.NewService(cfg, log)

	// Step 6: Create and wire the pulse driver
	driver := actuator.NewDriver(cfg.Timing.PulseHold(), statusPin, link, log)

	switch cfg.Profile {
	case config.ProfileSingle:
		// Single profile drives one contact; the lock pin is that contact.
		pin, err := actuator.PinByName(cfg.Pins.Lock)
		if err != nil {
			return err
		}
		driver.Wire(actuator.ButtonPrimary, pin, "Pressing...", "Pressed!")

	case config.ProfileDual:
		lockPin, err := actuator.PinByName(cfg.Pins.Lock)
		if err != nil {
			return err
		}
		unlockPin, err := actuator.PinByName(cfg.Pins.Unlock)
		if err != nil {
			return err
		}
		driver.Wire(actuator.ButtonLock, lockPin, "Locking...", "Locked!")
		driver.Wire(actuator.ButtonUnlock, unlockPin, "Unlocking...", "Unlocked!")
	}

	defer func() {
		if err := driver.AllLow(); err != nil {
			log.Warn("error releasing outputs", "error", err)
		}
	}()

	// Step 7: Create command orchestrator
	interpreter := command.NewInterpreter(cfg.Profile)
	orchestrator := command.NewOrchestrator(interpreter, driver, telemetryHub, log)
	orchestrator.SetRemoteSink(link)
	orchestrator.SetAuditLogger(auditLogger)

	link.SetHandlers(ble.Handlers{
		OnConnect:        orchestrator.HandleConnect,
		OnDisconnect:     orchestrator.HandleDisconnect,
		OnPairingRequest: orchestrator.HandlePairingRequest,
		OnSecured:        orchestrator.HandleSecured,
	})

	// Step 8: Boot blink, then go on air
	driver.Blink(cfg.Timing.StartupBlinkCount, cfg.Timing.StartupBlinkInterval())

	if err := link.Start(); err != nil {
		return err
	}
	log.Info("ready, waiting for BLE connection", "name", cfg.Device.Name)

	// Step 9: Consume command lines until shutdown
	ctx := audit.WithSource(context.Background(), "ble")
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		for line := range link.Lines() {
			orchestrator.HandleLine(ctx, line)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	sig := <-shutdown
	log.Info("received signal, shutting down", "signal", sig.String())

	// An in-flight pulse finishes its full hold before the loop drains.
	link.Close()
	<-loopDone

	log.Info("shutdown complete")
	return nil
}

// logEvents mirrors telemetry events onto the diagnostic stream.
func logEvents(log *slog.Logger, events <-chan telemetry.Event) {
	for ev := range events {
		log.Info("event", "id", ev.ID, "type", ev.Type, "data", ev.Data)
	}
}
