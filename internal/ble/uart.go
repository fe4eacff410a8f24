package ble

import (
	"fmt"
	"log/slog"
	"sync"

	"tinygo.org/x/bluetooth"

	"github.com/keyfob-control/kfc/internal/config"
)

// lineBacklog bounds how many unprocessed command lines the link holds
// while a pulse is in flight.
const lineBacklog = 16

// Service is the Nordic UART peripheral the phone talks to.
type Service struct {
	cfg *config.Config
	log *slog.Logger

	adapter *bluetooth.Adapter
	adv     *bluetooth.Advertisement
	rx      bluetooth.Characteristic
	tx      bluetooth.Characteristic
	txMu    sync.Mutex

	handlers Handlers

	// rxMu serializes line delivery against Close; the stack's goroutine
	// can fire WriteEvent while the main loop is shutting down.
	rxMu   sync.Mutex
	lines  chan string
	closed bool
}

// NewService creates the UART service around the default host adapter.
func NewService(cfg *config.Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cfg:     cfg,
		log:     log,
		adapter: bluetooth.DefaultAdapter,
		lines:   make(chan string, lineBacklog),
	}
}

// SetHandlers installs the lifecycle handler set. Must be called before
// Start.
func (s *Service) SetHandlers(h Handlers) {
	s.handlers = h
}

// Start enables the adapter, registers the UART service, and begins
// advertising as the configured device name.
func (s *Service) Start() error {
	if err := s.adapter.Enable(); err != nil {
		return fmt.Errorf("enable BLE stack: %w", err)
	}

	s.adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		if connected {
			s.log.Info("central connected")
			if s.handlers.OnConnect != nil {
				s.handlers.OnConnect()
			}
			return
		}

		s.log.Info("central disconnected")
		if s.handlers.OnDisconnect != nil {
			s.handlers.OnDisconnect()
		}
		if s.cfg.Advertising.RestartOnDisconnect {
			if err := s.adv.Start(); err != nil {
				s.log.Warn("advertising restart failed", "error", err)
			}
		}
	})

	err := s.adapter.AddService(&bluetooth.Service{
		UUID: bluetooth.ServiceUUIDNordicUART,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &s.rx,
				UUID:   bluetooth.CharacteristicUUIDUARTRX,
				Flags:  bluetooth.CharacteristicWritePermission | bluetooth.CharacteristicWriteWithoutResponsePermission,
				WriteEvent: func(client bluetooth.Connection, offset int, value []byte) {
					s.handleRX(value)
				},
			},
			{
				Handle: &s.tx,
				UUID:   bluetooth.CharacteristicUUIDUARTTX,
				Flags:  bluetooth.CharacteristicNotifyPermission | bluetooth.CharacteristicReadPermission,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("register UART service: %w", err)
	}

	s.adv = s.adapter.DefaultAdvertisement()
	err = s.adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    s.cfg.Device.Name,
		ServiceUUIDs: []bluetooth.UUID{bluetooth.ServiceUUIDNordicUART},
		Interval:     bluetooth.NewDuration(s.cfg.Advertising.Interval()),
	})
	if err != nil {
		return fmt.Errorf("configure advertising: %w", err)
	}
	if err := s.adv.Start(); err != nil {
		return fmt.Errorf("start advertising: %w", err)
	}

	s.log.Info("advertising", "name", s.cfg.Device.Name, "intervalMs", s.cfg.Advertising.IntervalMs)
	return nil
}

// Lines returns the channel of incoming command lines, in arrival order.
func (s *Service) Lines() <-chan string {
	return s.lines
}

// handleRX frames a GATT write into command lines and queues them. The
// queue never blocks the stack's goroutine; overflow drops the line, as
// does a write arriving after Close.
func (s *Service) handleRX(value []byte) {
	s.rxMu.Lock()
	defer s.rxMu.Unlock()

	if s.closed {
		return
	}

	for _, line := range splitFrames(value) {
		select {
		case s.lines <- line:
		default:
			s.log.Warn("command backlog full, dropping line", "line", line)
		}
	}
}

// Println sends one line of text to the peer as TX notifications.
func (s *Service) Println(line string) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	payload := append([]byte(line), '\n')
	for _, chunk := range chunkPayload(payload, attPayloadSize) {
		if _, err := s.tx.Write(chunk); err != nil {
			return fmt.Errorf("notify peer: %w", err)
		}
	}
	return nil
}

// RequestPairing routes a passkey display request from the host agent to
// the registered handler and reports whether pairing proceeds. With no
// handler installed the stack's default (accept) applies.
func (s *Service) RequestPairing(passkey string, matchRequest bool) bool {
	if s.handlers.OnPairingRequest == nil {
		return true
	}
	return s.handlers.OnPairingRequest(passkey, matchRequest)
}

// NotifySecured routes a link-secured notification from the host agent to
// the registered handler.
func (s *Service) NotifySecured() {
	if s.handlers.OnSecured != nil {
		s.handlers.OnSecured()
	}
}

// Close stops delivering command lines and closes the Lines channel.
// Writes still in flight on the stack's goroutine are dropped.
func (s *Service) Close() {
	s.rxMu.Lock()
	defer s.rxMu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.lines)
}
