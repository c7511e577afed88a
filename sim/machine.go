package sim

import (
	"gotone/core"
	"gotone/music"
)

// Machine is a simulated buzzer board: a CPU clock driving Timer1, the tone
// driver on top of it and a player sequencing melodies in system time.
type Machine struct {
	Timer  *Timer1
	Tone   *core.ToneDriver
	Player *core.Player

	ticksPerMS uint32
	subTicks   uint32 // CPU ticks into the current millisecond
	now        uint32 // System time in milliseconds
}

// NewMachine creates a machine with a CPU clock of clockHz
func NewMachine(clockHz uint32) *Machine {
	timer := NewTimer1(clockHz)
	drv := core.NewToneDriver(timer)
	timer.SetHandler(drv.OnToggleEvent)

	ticksPerMS := clockHz / core.TimeFreq
	if ticksPerMS == 0 {
		ticksPerMS = 1
	}

	return &Machine{
		Timer:      timer,
		Tone:       drv,
		Player:     core.NewPlayer(drv),
		ticksPerMS: ticksPerMS,
	}
}

// Now returns the system time in milliseconds
func (m *Machine) Now() uint32 {
	return m.now
}

// Play starts a melody at the current time
func (m *Machine) Play(mel music.Melody) {
	core.SetTime(m.now)
	m.Player.Play(mel, m.now)
	m.Player.Poll(m.now)
}

// Done reports whether the melody has finished and the last tone has stopped
func (m *Machine) Done() bool {
	return m.Player.Done() && !m.Tone.Active()
}

// Advance runs the machine for the given number of CPU ticks.
// The player is polled at every millisecond boundary.
func (m *Machine) Advance(ticks uint32) {
	for ticks > 0 {
		step := m.ticksPerMS - m.subTicks
		if ticks < step {
			step = ticks
		}
		m.Timer.Advance(step)
		m.subTicks += step
		ticks -= step

		if m.subTicks == m.ticksPerMS {
			m.subTicks = 0
			m.now++
			core.SetTime(m.now)
			m.Player.Poll(m.now)
		}
	}
}

// AdvanceMS runs the machine for ms milliseconds
func (m *Machine) AdvanceMS(ms uint32) {
	for i := uint32(0); i < ms; i++ {
		m.Advance(m.ticksPerMS)
	}
}

// RunUntilDone advances until Done or until limitMS milliseconds have passed.
// Returns whether the machine finished.
func (m *Machine) RunUntilDone(limitMS uint32) bool {
	for i := uint32(0); i < limitMS; i++ {
		if m.Done() {
			return true
		}
		m.AdvanceMS(1)
	}
	return m.Done()
}
