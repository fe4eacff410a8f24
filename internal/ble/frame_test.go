package ble

import (
	"bytes"
	"testing"
)

func TestSplitFrames(t *testing.T) {
	tests := []struct {
		name  string
		value []byte
		want  []string
	}{
		{"controller code without newline", []byte("!B11:"), []string{"!B11:"}},
		{"word with newline", []byte("lock\n"), []string{"lock"}},
		{"crlf terminated", []byte("unlock\r\n"), []string{"unlock"}},
		{"two lines in one write", []byte("lock\nunlock\n"), []string{"lock", "unlock"}},
		{"surrounding whitespace", []byte("  press  \n"), []string{"press"}},
		{"empty write", []byte(""), nil},
		{"whitespace only", []byte(" \r\n \n"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitFrames(tt.value)
			if len(got) != len(tt.want) {
				t.Fatalf("splitFrames(%q) = %v, want %v", tt.value, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("frame %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestChunkPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		size    int
		want    [][]byte
	}{
		{"short payload", []byte("Locked!\n"), 20, [][]byte{[]byte("Locked!\n")}},
		{"exact boundary", bytes.Repeat([]byte("a"), 20), 20, [][]byte{bytes.Repeat([]byte("a"), 20)}},
		{"one over boundary", bytes.Repeat([]byte("a"), 21), 20, [][]byte{bytes.Repeat([]byte("a"), 20), []byte("a")}},
		{"empty payload", nil, 20, nil},
		{"defaulted size", bytes.Repeat([]byte("b"), 25), 0, [][]byte{bytes.Repeat([]byte("b"), 20), bytes.Repeat([]byte("b"), 5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chunkPayload(tt.payload, tt.size)
			if len(got) != len(tt.want) {
				t.Fatalf("chunkPayload produced %d chunks, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if !bytes.Equal(got[i], tt.want[i]) {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
