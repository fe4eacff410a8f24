package command

import (
	"testing"

	"github.com/keyfob-control/kfc/internal/config"
)

func TestInterpretSingleProfile(t *testing.T) {
	interp := NewInterpreter(config.ProfileSingle)

	tests := []struct {
		name string
		line string
		want Action
	}{
		{"controller button 1", "!B11:", ActionPressPrimary},
		{"controller button 2", "!B21;", ActionPressPrimary},
		{"controller button 3", "!B31:", ActionPressPrimary},
		{"controller button 4", "!B41:", ActionPressPrimary},
		{"word press", "press", ActionPressPrimary},
		{"short p", "p", ActionPressPrimary},
		{"digit 1", "1", ActionPressPrimary},
		{"empty", "", ActionNone},
		{"unknown text", "hello", ActionHelp},
		{"button release code", "!B10:", ActionNone},
		{"unmatched sentinel token", "!XYZ", ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interp.Interpret(tt.line); got != tt.want {
				t.Errorf("Interpret(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestInterpretDualProfile(t *testing.T) {
	interp := NewInterpreter(config.ProfileDual)

	tests := []struct {
		name string
		line string
		want Action
	}{
		{"controller button 1", "!B11:", ActionPressLock},
		{"word lock", "lock", ActionPressLock},
		{"digit 1", "1", ActionPressLock},
		{"controller button 2", "!B21;", ActionPressUnlock},
		{"word unlock", "unlock", ActionPressUnlock},
		{"digit 2", "2", ActionPressUnlock},
		{"controller button 3", "!B31:", ActionUnassigned},
		{"controller button 4", "!B41:", ActionUnassigned},
		{"empty", "", ActionNone},
		{"unknown text", "hello", ActionHelp},
		{"digit without mapping", "3", ActionHelp},
		{"button release code", "!B20:", ActionNone},
		{"unmatched sentinel token", "!XYZ", ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interp.Interpret(tt.line); got != tt.want {
				t.Errorf("Interpret(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestUsageIsTwoLines(t *testing.T) {
	for _, profile := range []string{config.ProfileSingle, config.ProfileDual} {
		usage := NewInterpreter(profile).Usage()
		if len(usage) != 2 {
			t.Errorf("profile %s: usage has %d lines, want 2", profile, len(usage))
		}
		for _, line := range usage {
			if line == "" {
				t.Errorf("profile %s: usage contains an empty line", profile)
			}
		}
	}
}

func TestWelcomeBanner(t *testing.T) {
	single := NewInterpreter(config.ProfileSingle).Welcome()
	if len(single) == 0 || single[0] != "===== KEYFOB READY =====" {
		t.Errorf("single welcome banner = %v", single)
	}

	dual := NewInterpreter(config.ProfileDual).Welcome()
	if len(dual) != 3 {
		t.Errorf("dual welcome has %d lines, want 3", len(dual))
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionNone, "none"},
		{ActionPressPrimary, "pressPrimary"},
		{ActionPressLock, "pressLock"},
		{ActionPressUnlock, "pressUnlock"},
		{ActionHelp, "help"},
		{ActionUnassigned, "buttonUnassigned"},
		{Action(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.action, got, tt.want)
		}
	}
}
