//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/tone"

	"gotone/core"
)

// virtualClockHz is the Timer1 clock the divider search runs against, so the
// bench board plays exactly the pitches an 8 MHz ATtiny85 would
const virtualClockHz = 8000000

// speakerTimer presents a PWM slice driving a speaker as a ToneTimer.
// The PWM produces the square wave; toggle events are derived from the
// microsecond clock in Poll and delivered under the interrupt mask.
type speakerTimer struct {
	speaker tone.Speaker
	onEvent func()

	divider core.Divider
	compare uint8
	toggle  bool
	armed   bool

	halfPeriodNS uint64
	startUS      uint64
	events       uint64 // Toggle events delivered since startUS
	running      bool
}

func newSpeakerTimer(pwm tone.PWM, pin machine.Pin) (*speakerTimer, error) {
	speaker, err := tone.New(pwm, pin)
	if err != nil {
		return nil, err
	}
	speaker.Stop()
	return &speakerTimer{speaker: speaker}, nil
}

func (s *speakerTimer) SetDivider(d core.Divider) {
	s.divider = d
}

func (s *speakerTimer) SetCompareValue(v uint8) {
	s.compare = v
}

func (s *speakerTimer) SetToggleMode() {
	s.toggle = true
}

// EnableCompletionInterrupt starts the wave with the programmed period
func (s *speakerTimer) EnableCompletionInterrupt() {
	s.armed = true
	if !s.toggle || s.divider == 0 {
		return
	}

	ticks := uint64(s.compare+1) * uint64(s.divider.Ratio())
	s.halfPeriodNS = ticks * 1000000000 / virtualClockHz
	s.speaker.SetPeriod(2 * s.halfPeriodNS)

	s.startUS = GetHardwareUptime()
	s.events = 0
	s.running = true
}

func (s *speakerTimer) Disable() {
	s.speaker.Stop()
	s.divider = 0
	s.toggle = false
	s.armed = false
	s.running = false
}

func (s *speakerTimer) ClockHz() uint32 {
	return virtualClockHz
}

func (s *speakerTimer) MaxDivider() core.Divider {
	return core.DividerMaxTimer1
}

// Poll delivers the toggle events that are due at nowUS
func (s *speakerTimer) Poll(nowUS uint64) {
	if !s.running || !s.armed || s.halfPeriodNS == 0 {
		return
	}
	due := (nowUS - s.startUS) * 1000 / s.halfPeriodNS
	for s.running && s.events < due {
		s.events++
		core.RunInterrupt(s.onEvent)
	}
}
