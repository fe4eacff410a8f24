package command

import (
	"strings"

	"github.com/keyfob-control/kfc/internal/config"
)

// Action is the result of classifying one incoming line.
type Action int

const (
	// ActionNone means the line requires no reaction at all.
	ActionNone Action = iota
	// ActionPressPrimary pulses the single-profile primary button.
	ActionPressPrimary
	// ActionPressLock pulses the lock button.
	ActionPressLock
	// ActionPressUnlock pulses the unlock button.
	ActionPressUnlock
	// ActionHelp replies with the usage hint; no pulse.
	ActionHelp
	// ActionUnassigned is a recognized controller button with no wired
	// contact; logged, never pulsed, no remote reply.
	ActionUnassigned
)

// String returns the action name for logs and audit records.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionPressPrimary:
		return "pressPrimary"
	case ActionPressLock:
		return "pressLock"
	case ActionPressUnlock:
		return "pressUnlock"
	case ActionHelp:
		return "help"
	case ActionUnassigned:
		return "buttonUnassigned"
	default:
		return "unknown"
	}
}

// Controller button-press codes sent by BLE terminal apps ("button N
// pressed"). Matched by substring because the apps append a checksum byte.
const (
	codeButton1 = "!B11"
	codeButton2 = "!B21"
	codeButton3 = "!B31"
	codeButton4 = "!B41"

	// sentinelPrefix marks controller-generated codes. Tokens carrying it
	// that match nothing above (e.g. button release codes) are dropped
	// silently instead of triggering the usage hint.
	sentinelPrefix = '!'
)

// Interpreter classifies trimmed command lines for one button profile.
type Interpreter struct {
	profile string
}

// NewInterpreter creates an interpreter for the given profile
// (config.ProfileSingle or config.ProfileDual).
func NewInterpreter(profile string) *Interpreter {
	return &Interpreter{profile: profile}
}

// Interpret classifies a trimmed line into an Action.
func (i *Interpreter) Interpret(line string) Action {
	if line == "" {
		return ActionNone
	}

	if i.profile == config.ProfileSingle {
		return i.interpretSingle(line)
	}
	return i.interpretDual(line)
}

// interpretSingle treats every controller button as the primary trigger.
func (i *Interpreter) interpretSingle(line string) Action {
	switch {
	case strings.Contains(line, codeButton1),
		strings.Contains(line, codeButton2),
		strings.Contains(line, codeButton3),
		strings.Contains(line, codeButton4),
		line == "press", line == "p", line == "1":
		return ActionPressPrimary
	case line[0] != sentinelPrefix:
		return ActionHelp
	default:
		return ActionNone
	}
}

// interpretDual assigns button 1 to lock and button 2 to unlock; buttons
// 3 and 4 are acknowledged but not wired.
func (i *Interpreter) interpretDual(line string) Action {
	switch {
	case strings.Contains(line, codeButton1), line == "lock", line == "1":
		return ActionPressLock
	case strings.Contains(line, codeButton2), line == "unlock", line == "2":
		return ActionPressUnlock
	case strings.Contains(line, codeButton3), strings.Contains(line, codeButton4):
		return ActionUnassigned
	case line[0] != sentinelPrefix:
		return ActionHelp
	default:
		return ActionNone
	}
}

// Usage returns the two-line usage hint sent in reply to unrecognized text.
func (i *Interpreter) Usage() []string {
	if i.profile == config.ProfileSingle {
		return []string{
			"Commands: press, p, 1",
			"Or use any Controller button",
		}
	}
	return []string{
		"Commands: lock, unlock, 1, 2",
		"Or use Controller buttons 1-2",
	}
}

// Welcome returns the banner sent to a freshly connected peer.
func (i *Interpreter) Welcome() []string {
	if i.profile == config.ProfileSingle {
		return []string{
			"===== KEYFOB READY =====",
			"Any button = PRESS",
		}
	}
	return []string{
		"===== KEYFOB READY =====",
		"Button 1 = LOCK",
		"Button 2 = UNLOCK",
	}
}
