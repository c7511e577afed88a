//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// irqMu stands in for the global interrupt enable on regular Go.
// Simulated timers deliver their events through RunInterrupt, so holding it
// keeps the event handler out exactly like masking interrupts on hardware.
var irqMu sync.Mutex

// disableInterrupts enters the critical section
// Not reentrant on regular Go.
func disableInterrupts() State {
	irqMu.Lock()
	return 0
}

// restoreInterrupts leaves the critical section
func restoreInterrupts(state State) {
	irqMu.Unlock()
}

// RunInterrupt runs an interrupt handler with interrupts masked
// Simulated peripherals call this in place of a hardware vector.
func RunInterrupt(handler func()) {
	irqMu.Lock()
	handler()
	irqMu.Unlock()
}
