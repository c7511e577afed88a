//go:build tonedebug

package core

// assertFrequency panics when a tone is started outside the timer range
func assertFrequency(timer ToneTimer, frequency uint32) {
	if err := CheckFrequency(timer.ClockHz(), frequency, timer.MaxDivider()); err != nil {
		panic("StartTone: " + err.Error() + " (" + utoa(frequency) + " Hz)")
	}
}
