package core

// Divider selects one of the hardware clock divider steps.
// Index 1 is the undivided clock and every further step halves the timer clock,
// so index n divides the system clock by 2^(n-1).
type Divider uint8

const (
	// DividerNone is the undivided system clock
	DividerNone Divider = 1

	// DividerMaxTimer1 is the coarsest step of ATtiny85 Timer1 (CK/16384)
	DividerMaxTimer1 Divider = 15

	// CompareMax is the largest value the 8-bit compare register holds
	CompareMax = 255
)

// Ratio returns the clock division factor for this divider step
func (d Divider) Ratio() uint32 {
	if d == 0 {
		return 0 // Stopped
	}
	return 1 << (d - 1)
}

// ToneTimer is the abstract timer peripheral that the tone driver programs.
// Platform-specific implementations handle the actual registers, or simulate them.
//
// The timer drives one output pin that has already been configured as an output.
// While running in toggle mode it flips that pin on every compare match, and when
// the completion interrupt is enabled it calls back into ToneDriver.OnToggleEvent
// once per match.
type ToneTimer interface {
	// SetDivider selects the clock divider step feeding the counter
	SetDivider(d Divider)

	// SetCompareValue loads the compare register; the counter runs 0..v inclusive
	SetCompareValue(v uint8)

	// SetToggleMode switches the output to toggle-on-compare-match
	SetToggleMode()

	// EnableCompletionInterrupt arms the compare-match interrupt
	EnableCompletionInterrupt()

	// Disable stops the counter; the pin returns to its rest level
	Disable()

	// ClockHz returns the system clock feeding the divider
	ClockHz() uint32

	// MaxDivider returns the coarsest divider step the hardware supports
	MaxDivider() Divider
}
