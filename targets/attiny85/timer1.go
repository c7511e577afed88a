//go:build attiny85

package main

import (
	"device/avr"

	"gotone/core"
)

// TCCR1 fields
const (
	tccr1CTC1   = 0x80 // Clear timer on OCR1C match
	tccr1COM1A0 = 0x10 // Toggle OC1A (PB1) on compare match
	tccr1CSMask = 0x0F // Clock select, 0 stops the counter
)

// timer1 drives the ATtiny85 Timer1 registers directly
type timer1 struct {
	clockHz uint32
	tccr1   uint8 // Shadow of the mode bits written with the clock select
}

func (t *timer1) SetDivider(d core.Divider) {
	avr.TCCR1.Set(t.tccr1 | uint8(d)&tccr1CSMask)
}

func (t *timer1) SetCompareValue(v uint8) {
	avr.OCR1C.Set(v)
}

func (t *timer1) SetToggleMode() {
	t.tccr1 = tccr1CTC1 | tccr1COM1A0
}

func (t *timer1) EnableCompletionInterrupt() {
	avr.TIMSK.SetBits(avr.TIMSK_OCIE1A)
}

// Disable stops the clock and leaves CTC toggle mode configured
func (t *timer1) Disable() {
	avr.TCCR1.Set(tccr1CTC1 | tccr1COM1A0)
}

func (t *timer1) ClockHz() uint32 {
	return t.clockHz
}

func (t *timer1) MaxDivider() core.Divider {
	return core.DividerMaxTimer1
}
