package ble

import "strings"

// attPayloadSize is the notification payload most BLE terminal apps
// negotiate; longer lines are split across notifications.
const attPayloadSize = 20

// splitFrames turns one GATT write into zero or more trimmed command
// lines. Terminal apps send word commands newline-terminated but controller
// codes as bare writes, so every segment of a write is a complete line.
func splitFrames(value []byte) []string {
	var lines []string
	for _, seg := range strings.Split(string(value), "\n") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		lines = append(lines, seg)
	}
	return lines
}

// chunkPayload slices a notification payload into ATT-sized chunks.
func chunkPayload(payload []byte, size int) [][]byte {
	if size <= 0 {
		size = attPayloadSize
	}
	var chunks [][]byte
	for len(payload) > size {
		chunks = append(chunks, payload[:size])
		payload = payload[size:]
	}
	if len(payload) > 0 {
		chunks = append(chunks, payload)
	}
	return chunks
}
