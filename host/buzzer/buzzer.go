// Package buzzer drives a tone MCU over the serial link.
package buzzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gotone/core"
	"gotone/host/serial"
	"gotone/music"
	"gotone/protocol"
)

var ErrUnexpectedResponse = errors.New("unexpected response")

// State is the MCU's playback state
type State struct {
	Remaining uint32 // Toggles left in the current tone
	Active    bool   // Timer still toggling the pin
}

// Range is the MCU's verdict on one frequency
type Range struct {
	Frequency uint32
	OK        bool
	Divider   core.Divider
	Compare   uint8
}

// Client represents a connection to a buzzer MCU
type Client struct {
	transport *protocol.HostTransport
	logger    *slog.Logger

	// Articulation is the sounding part of each note in Play, in percent
	Articulation uint32

	// ResponseTimeout bounds Query and Check
	ResponseTimeout time.Duration
}

// New creates a client on an open port. The client owns the port.
func New(port io.ReadWriteCloser, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		transport:       protocol.NewHostTransport(port),
		logger:          logger,
		Articulation:    core.DefaultArticulation,
		ResponseTimeout: time.Second,
	}
	c.transport.SetResponseHandler(c.handleResponse)
	return c
}

// Dial opens a serial port and connects to the MCU on it
func Dial(cfg *serial.Config, logger *slog.Logger) (*Client, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, err
	}
	// Drop anything the MCU sent before we were listening
	if err := port.Flush(); err != nil {
		port.Close()
		return nil, fmt.Errorf("flush %s: %w", cfg.Device, err)
	}
	return New(port, logger), nil
}

// Close closes the connection to the MCU
func (c *Client) Close() error {
	return c.transport.Close()
}

// StartTone plays frequency hertz for duration milliseconds
func (c *Client) StartTone(frequency, duration uint32) error {
	c.logger.Debug("tone_start", "frequency", frequency, "duration_ms", duration)
	return c.transport.SendCommand(protocol.CmdToneStart, func(output protocol.OutputBuffer) {
		protocol.EncodeVLQUint(output, frequency)
		protocol.EncodeVLQUint(output, duration)
	})
}

// Stop silences the buzzer
func (c *Client) Stop() error {
	c.logger.Debug("tone_stop")
	return c.transport.SendCommand(protocol.CmdToneStop, nil)
}

// Query reads the playback state
func (c *Client) Query() (State, error) {
	args, err := c.request(protocol.CmdToneQuery, nil, protocol.RspToneState, 2)
	if err != nil {
		return State{}, err
	}
	return State{Remaining: args[0], Active: args[1] != 0}, nil
}

// Check asks the MCU whether it can produce frequency
func (c *Client) Check(frequency uint32) (Range, error) {
	args, err := c.request(protocol.CmdToneCheck, func(output protocol.OutputBuffer) {
		protocol.EncodeVLQUint(output, frequency)
	}, protocol.RspToneRange, 4)
	if err != nil {
		return Range{}, err
	}
	return Range{
		Frequency: args[0],
		OK:        args[1] != 0,
		Divider:   core.Divider(args[2]),
		Compare:   uint8(args[3]),
	}, nil
}

// request sends a command and decodes count arguments of the response id
func (c *Client) request(cmdID uint16, args func(protocol.OutputBuffer), respID uint16, count int) ([]uint32, error) {
	if err := c.transport.SendCommand(cmdID, args); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(c.ResponseTimeout)
	for {
		resp, err := c.transport.ReceiveResponse(time.Until(deadline))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", protocol.CommandName(respID), err)
		}

		payload := resp.Payload
		id, err := protocol.DecodeVLQUint(&payload)
		if err != nil {
			return nil, err
		}
		if uint16(id) != respID {
			continue // Stale response to an earlier request
		}

		values := make([]uint32, count)
		for i := range values {
			if values[i], err = protocol.DecodeVLQUint(&payload); err != nil {
				return nil, fmt.Errorf("%s: %w", protocol.CommandName(respID), ErrUnexpectedResponse)
			}
		}
		return values, nil
	}
}

// Play sequences a melody on host time, one tone_start per note.
// It returns when the melody ends or ctx is cancelled; on cancellation the
// buzzer is silenced and ctx.Err() returned.
func (c *Client) Play(ctx context.Context, m music.Melody) error {
	if len(m.Notes) == 0 {
		return core.ErrEmptyMelody
	}

	whole := m.WholeMS()
	start := time.Now()
	var at time.Duration

	for i, n := range m.Notes {
		length := n.Units.Millis(whole)

		if n.Pitch == music.Rest {
			if err := c.Stop(); err != nil {
				return fmt.Errorf("note %d: %w", i, err)
			}
		} else {
			if err := c.StartTone(n.Pitch.Hz(), length*c.Articulation/100); err != nil {
				return fmt.Errorf("note %d (%s): %w", i, n.Pitch, err)
			}
		}

		at += time.Duration(length) * time.Millisecond
		select {
		case <-time.After(time.Until(start.Add(at))):
		case <-ctx.Done():
			if err := c.Stop(); err != nil {
				c.logger.Warn("stop after cancel failed", "err", err)
			}
			return ctx.Err()
		}
	}

	c.logger.Info("melody finished", "title", m.Title, "notes", len(m.Notes))
	return nil
}

// handleResponse logs responses from the MCU (async callback)
func (c *Client) handleResponse(cmdID uint16, data *[]byte) error {
	c.logger.Debug("response", "name", protocol.CommandName(cmdID), "bytes", len(*data))
	return nil
}
