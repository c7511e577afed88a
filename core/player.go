package core

import (
	"errors"

	"gotone/music"
)

// DefaultArticulation is the percentage of each note length that sounds
const DefaultArticulation = 90

var ErrEmptyMelody = errors.New("melody has no notes")

// NoteError reports a melody note the timer cannot play
type NoteError struct {
	Index int
	Note  music.Note
	Err   error
}

func (e *NoteError) Error() string {
	return "note " + itoa(e.Index) + " (" + e.Note.Pitch.String() + "): " + e.Err.Error()
}

func (e *NoteError) Unwrap() error {
	return e.Err
}

// CheckMelody verifies every pitched note is in range for the timer
func CheckMelody(m *music.Melody, timer ToneTimer) error {
	if len(m.Notes) == 0 {
		return ErrEmptyMelody
	}
	for i, n := range m.Notes {
		if n.Pitch == music.Rest {
			continue
		}
		if err := CheckFrequency(timer.ClockHz(), n.Pitch.Hz(), timer.MaxDivider()); err != nil {
			return &NoteError{Index: i, Note: n, Err: err}
		}
	}
	return nil
}

// Player sequences a melody onto a ToneDriver.
// Each note's tone is started and left to the timer to stop; the player only
// wakes up at note boundaries.
type Player struct {
	tone  *ToneDriver
	sched Scheduler
	timer Timer

	melody music.Melody
	index  int
	done   bool

	// Loop restarts the melody after its last note
	Loop bool

	// Articulation is the sounding part of each note, in percent
	Articulation uint32
}

// NewPlayer creates a player for the given driver
func NewPlayer(tone *ToneDriver) *Player {
	p := &Player{
		tone:         tone,
		Articulation: DefaultArticulation,
		done:         true,
	}
	p.timer.Handler = p.nextNote
	return p
}

// Play starts m at system time now, replacing whatever was playing
func (p *Player) Play(m music.Melody, now uint32) {
	p.sched.Cancel(&p.timer)
	p.melody = m
	p.index = 0
	p.done = len(m.Notes) == 0
	if p.done {
		return
	}
	p.timer.WakeTime = now
	p.sched.Schedule(&p.timer)
}

// Stop abandons the melody and silences the tone
func (p *Player) Stop() {
	p.sched.Cancel(&p.timer)
	p.done = true
	p.tone.Silence()
}

// Poll runs any note boundary that is due at system time now
func (p *Player) Poll(now uint32) {
	p.sched.Dispatch(now)
}

// Done reports whether the last note has played out
func (p *Player) Done() bool {
	return p.done
}

// Position returns the index of the next note to load
func (p *Player) Position() int {
	return p.index
}

// NextWake returns when the player next needs Poll
func (p *Player) NextWake() (uint32, bool) {
	return p.sched.NextWake()
}

// nextNote is the note boundary timer handler
func (p *Player) nextNote(t *Timer) uint8 {
	notes := p.melody.Notes
	if p.index >= len(notes) {
		if !p.Loop {
			p.done = true
			RecordTiming(EvtMelodyEnd, 0, uint32(len(notes)), 0)
			return SF_DONE
		}
		p.index = 0
	}

	n := notes[p.index]
	length := n.Units.Millis(p.melody.WholeMS())
	if n.Pitch == music.Rest {
		p.tone.Silence()
		RecordTiming(EvtRest, 0, uint32(p.index), length)
	} else {
		RecordTiming(EvtNoteLoad, 0, uint32(p.index), n.Pitch.Hz())
		p.tone.StartTone(n.Pitch.Hz(), length*p.Articulation/100)
	}
	p.index++

	if length == 0 {
		length = 1 // Keep a looping melody of empty notes from spinning
	}
	t.WakeTime += length
	return SF_RESCHEDULE
}
