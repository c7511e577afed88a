package core

import (
	"errors"

	"gotone/protocol"
)

var ErrCommandTable = errors.New("command table registered out of order")

// ResponseSender emits a response message to the host
type ResponseSender func(id uint16, args func(output protocol.OutputBuffer))

// toneCommands binds link commands to a driver
type toneCommands struct {
	drv  *ToneDriver
	send ResponseSender
}

// InitToneCommands registers the link's message table on reg.
// The registry must be empty so ids line up with protocol.Commands.
func InitToneCommands(reg *CommandRegistry, drv *ToneDriver, send ResponseSender) error {
	c := &toneCommands{drv: drv, send: send}

	handlers := [len(protocol.Commands)]CommandHandler{
		protocol.CmdToneStart: c.handleToneStart,
		protocol.CmdToneStop:  c.handleToneStop,
		protocol.CmdToneQuery: c.handleToneQuery,
		protocol.CmdToneCheck: c.handleToneCheck,
	}

	for i := range protocol.Commands {
		id := uint16(i)
		got := reg.Register(protocol.CommandName(id), protocol.CommandFormat(id), handlers[i])
		if got != id {
			return ErrCommandTable
		}
	}
	return nil
}

// handleToneStart plays a tone if the timer can produce it
// Format: tone_start frequency=%u duration=%u
func (c *toneCommands) handleToneStart(data *[]byte) error {
	frequency, err := protocol.DecodeVLQUint(data)
	if err != nil {
		return err
	}
	duration, err := protocol.DecodeVLQUint(data)
	if err != nil {
		return err
	}

	timer := c.drv.Timer()
	if err := CheckFrequency(timer.ClockHz(), frequency, timer.MaxDivider()); err != nil {
		return err
	}

	RecordTiming(EvtCommand, 0, uint32(protocol.CmdToneStart), frequency)
	c.drv.StartTone(frequency, duration)
	return nil
}

// handleToneStop silences the buzzer
// Format: tone_stop
func (c *toneCommands) handleToneStop(data *[]byte) error {
	RecordTiming(EvtCommand, 0, uint32(protocol.CmdToneStop), 0)
	c.drv.Silence()
	return nil
}

// handleToneQuery reports the playback state
// Format: tone_query
func (c *toneCommands) handleToneQuery(data *[]byte) error {
	remaining := c.drv.Remaining()
	active := c.drv.Active()

	c.send(protocol.RspToneState, func(output protocol.OutputBuffer) {
		protocol.EncodeVLQUint(output, remaining)
		if active {
			protocol.EncodeVLQUint(output, 1)
		} else {
			protocol.EncodeVLQUint(output, 0)
		}
	})
	return nil
}

// handleToneCheck reports the timer configuration for a frequency
// Format: tone_check frequency=%u
func (c *toneCommands) handleToneCheck(data *[]byte) error {
	frequency, err := protocol.DecodeVLQUint(data)
	if err != nil {
		return err
	}

	timer := c.drv.Timer()
	ok := CheckFrequency(timer.ClockHz(), frequency, timer.MaxDivider()) == nil
	var cfg TimerConfig
	if ok {
		cfg = PlanTone(timer.ClockHz(), frequency)
	}

	c.send(protocol.RspToneRange, func(output protocol.OutputBuffer) {
		protocol.EncodeVLQUint(output, frequency)
		if ok {
			protocol.EncodeVLQUint(output, 1)
		} else {
			protocol.EncodeVLQUint(output, 0)
		}
		protocol.EncodeVLQUint(output, uint32(cfg.Divider))
		protocol.EncodeVLQUint(output, uint32(cfg.Compare))
	})
	return nil
}
