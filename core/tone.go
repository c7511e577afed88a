// Non-blocking tone generation
// A hardware timer toggles the buzzer pin at twice the note frequency and the
// compare-match interrupt counts toggles down until the note has played out.
package core

import (
	"errors"
	"sync/atomic"
)

var (
	ErrZeroFrequency    = errors.New("tone frequency must be positive")
	ErrFrequencyTooLow  = errors.New("tone frequency below timer range")
	ErrFrequencyTooHigh = errors.New("tone frequency above timer range")
)

// TimerConfig is the timer programming chosen for one frequency
type TimerConfig struct {
	Divider  Divider // Selected clock divider step
	Interval uint32  // Divided clocks per half period
	Compare  uint8   // Compare register value (Interval - 1)
	ActualHz uint32  // Frequency the configuration really produces
}

// SelectDivider finds the finest divider step that fits the half-period
// interval into the 8-bit compare register.
// Returns the divider and the interval in divided clocks.
func SelectDivider(clockHz, frequency uint32) (Divider, uint32) {
	interval := clockHz / frequency / 2
	divider := DividerNone
	for interval > CompareMax {
		divider++
		interval /= 2
	}
	return divider, interval
}

// ToggleCount converts a duration in milliseconds into pin toggles.
// Every wave period is two toggles: frequency * 2 * duration / 1000.
func ToggleCount(frequency, duration uint32) uint32 {
	return frequency * duration / 500
}

// PlanTone computes the timer configuration StartTone would program
func PlanTone(clockHz, frequency uint32) TimerConfig {
	divider, interval := SelectDivider(clockHz, frequency)
	cfg := TimerConfig{
		Divider:  divider,
		Interval: interval,
		Compare:  uint8(interval - 1),
	}
	if interval != 0 {
		cfg.ActualHz = clockHz / (2 * interval * divider.Ratio())
	}
	return cfg
}

// CheckFrequency reports whether frequency can be produced by a timer with
// the given clock and coarsest divider. StartTone does not check this itself.
func CheckFrequency(clockHz, frequency uint32, maxDivider Divider) error {
	if frequency == 0 {
		return ErrZeroFrequency
	}
	divider, interval := SelectDivider(clockHz, frequency)
	if interval == 0 {
		return ErrFrequencyTooHigh
	}
	if divider > maxDivider {
		return ErrFrequencyTooLow
	}
	return nil
}

// ToneDriver plays one tone at a time on a ToneTimer.
//
// remaining is the only state shared with the interrupt handler. StartTone
// replaces it wholesale and OnToggleEvent only ever decrements it.
type ToneDriver struct {
	timer     ToneTimer
	remaining uint32 // atomic, toggles left in the current tone
	active    uint32 // atomic bool, timer is toggling the pin
}

// NewToneDriver creates a driver for the given timer
// The timer's output pin must already be configured as an output.
func NewToneDriver(timer ToneTimer) *ToneDriver {
	return &ToneDriver{timer: timer}
}

// StartTone starts a square wave of frequency hertz lasting duration
// milliseconds and returns immediately. A tone already playing is replaced.
//
// frequency must be within the timer range (see CheckFrequency); out of range
// values program whatever the divider search ends on.
func (d *ToneDriver) StartTone(frequency, duration uint32) {
	assertFrequency(d.timer, frequency)

	divider, interval := SelectDivider(d.timer.ClockHz(), frequency)
	toggles := ToggleCount(frequency, duration)

	state := disableInterrupts()
	d.timer.SetToggleMode()
	d.timer.SetDivider(divider)
	atomic.StoreUint32(&d.remaining, toggles)
	d.timer.SetCompareValue(uint8(interval - 1))
	atomic.StoreUint32(&d.active, 1)
	d.timer.EnableCompletionInterrupt()
	restoreInterrupts(state)

	RecordTiming(EvtToneStart, uint8(divider), frequency, toggles)
}

// OnToggleEvent is the compare-match interrupt handler.
// It is called once per pin toggle; the toggle after the count reaches zero
// stops the timer.
func (d *ToneDriver) OnToggleEvent() {
	if n := atomic.LoadUint32(&d.remaining); n != 0 {
		atomic.StoreUint32(&d.remaining, n-1)
		return
	}
	d.timer.Disable()
	atomic.StoreUint32(&d.active, 0)
}

// Silence stops any tone immediately
func (d *ToneDriver) Silence() {
	state := disableInterrupts()
	d.timer.Disable()
	atomic.StoreUint32(&d.remaining, 0)
	atomic.StoreUint32(&d.active, 0)
	restoreInterrupts(state)

	RecordTiming(EvtToneStop, 0, 0, 0)
}

// Remaining returns the toggles left in the current tone
func (d *ToneDriver) Remaining() uint32 {
	return atomic.LoadUint32(&d.remaining)
}

// Active reports whether the timer is still toggling the pin
func (d *ToneDriver) Active() bool {
	return atomic.LoadUint32(&d.active) != 0
}

// Timer returns the timer this driver programs
func (d *ToneDriver) Timer() ToneTimer {
	return d.timer
}
