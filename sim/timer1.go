// Package sim models the buzzer hardware closely enough to run the tone
// driver and player on a host: an ATtiny85 Timer1 in CTC mode, a machine
// clocking it, and a renderer turning the output pin into PCM audio.
package sim

import "gotone/core"

// Timer1 control register fields
const (
	dividerMask = 0x0F // CS13:CS10
)

// Timer1 simulates ATtiny85 Timer1 clearing on compare match.
// The counter runs 0..compare on the divided clock; every match toggles the
// output pin (in toggle mode) and raises the compare interrupt (if armed).
//
// Advance and the code programming the timer must run on the same goroutine;
// the interrupt handler runs under core.RunInterrupt like a real ISR.
type Timer1 struct {
	clockHz uint32
	maxDiv  core.Divider

	divider core.Divider
	compare uint8
	toggle  bool
	irq     bool
	counter uint32 // CPU ticks into the current period

	pin     bool
	handler func()

	matches uint64
}

// NewTimer1 creates a stopped timer clocked at clockHz
func NewTimer1(clockHz uint32) *Timer1 {
	return &Timer1{clockHz: clockHz, maxDiv: core.DividerMaxTimer1}
}

// SetHandler registers the compare-match interrupt handler
func (t *Timer1) SetHandler(fn func()) {
	t.handler = fn
}

// SetMaxDivider limits the divider range, to model smaller timers
func (t *Timer1) SetMaxDivider(d core.Divider) {
	t.maxDiv = d
}

func (t *Timer1) SetDivider(d core.Divider) {
	t.divider = d & dividerMask
}

func (t *Timer1) SetCompareValue(v uint8) {
	t.compare = v
	if t.counter >= t.period() {
		t.counter = 0
	}
}

func (t *Timer1) SetToggleMode() {
	t.toggle = true
}

func (t *Timer1) EnableCompletionInterrupt() {
	t.irq = true
}

// Disable stops the clock and drives the pin low
func (t *Timer1) Disable() {
	t.divider = 0
	t.toggle = false
	t.irq = false
	t.counter = 0
	t.pin = false
}

func (t *Timer1) ClockHz() uint32 {
	return t.clockHz
}

func (t *Timer1) MaxDivider() core.Divider {
	return t.maxDiv
}

// Running reports whether the counter is clocked and toggling the pin
func (t *Timer1) Running() bool {
	return t.divider != 0 && t.toggle
}

// Pin returns the output pin level
func (t *Timer1) Pin() bool {
	return t.pin
}

// Divider returns the programmed divider step, 0 when stopped
func (t *Timer1) Divider() core.Divider {
	return t.divider
}

// Compare returns the compare register
func (t *Timer1) Compare() uint8 {
	return t.compare
}

// Matches returns the number of compare matches since creation
func (t *Timer1) Matches() uint64 {
	return t.matches
}

// period is the CPU ticks between compare matches
func (t *Timer1) period() uint32 {
	return (uint32(t.compare) + 1) * t.divider.Ratio()
}

// Advance runs the timer for the given number of CPU ticks
func (t *Timer1) Advance(ticks uint32) {
	for ticks > 0 && t.Running() {
		need := t.period() - t.counter
		if ticks < need {
			t.counter += ticks
			return
		}
		ticks -= need
		t.counter = 0
		t.match()
	}
}

// match handles one compare match
func (t *Timer1) match() {
	t.matches++
	t.pin = !t.pin
	if t.irq && t.handler != nil {
		core.RunInterrupt(t.handler)
	}
}
