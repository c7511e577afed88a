//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts disables interrupts and returns the previous state
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt state
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}

// RunInterrupt runs a handler with interrupts disabled
// Used where toggle events are emulated from a goroutine instead of a vector.
func RunInterrupt(handler func()) {
	state := interrupt.Disable()
	handler()
	interrupt.Restore(state)
}
