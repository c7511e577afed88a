package core

import "sync/atomic"

// System time runs in milliseconds, the unit tone durations are given in.
// Targets feed it from a hardware clock; the simulator advances it directly.
const (
	TimeFreq = 1000 // 1kHz system time
)

var systemTicks uint32 // atomic

// GetTime returns the current system time in milliseconds
func GetTime() uint32 {
	return atomic.LoadUint32(&systemTicks)
}

// SetTime sets the current system time (for testing/hardware integration)
func SetTime(ms uint32) {
	atomic.StoreUint32(&systemTicks, ms)
}

// TimeFromUS converts microseconds to system time, rounding down
func TimeFromUS(us uint64) uint32 {
	return uint32(us * TimeFreq / 1000000)
}
