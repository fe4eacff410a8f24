// Package command defines ports (interfaces) for orchestrator operations.
package command

import (
	"context"
	"time"

	"github.com/keyfob-control/kfc/internal/actuator"
)

// PulseDriver is the southbound port into the actuator.
type PulseDriver interface {
	Press(ctx context.Context, b actuator.Button) error
}

// RemoteSink writes notification lines back to the connected peer.
type RemoteSink interface {
	Println(line string) error
}

// AuditLogger interface for writing audit records.
type AuditLogger interface {
	LogAction(ctx context.Context, action, button, result string, latency time.Duration)
}
