// Package music holds the note vocabulary the tone driver plays: pitch and
// length tables, melodies and a small text notation for writing them.
package music

import (
	"errors"
	"strconv"
	"strings"
)

// Note is one pitch held for a length
type Note struct {
	Pitch Pitch
	Units Units
}

// Melody is a monophonic tune
type Melody struct {
	Title string
	Tempo uint32 // Whole-note length in milliseconds
	Notes []Note
}

// DefaultTempo is the whole-note length used when a melody gives none
const DefaultTempo = 1600

var (
	ErrBadToken = errors.New("expected NAME:LENGTH")
	ErrPitch    = errors.New("unknown pitch")
	ErrLength   = errors.New("unknown note length")
)

// ParseError locates a bad token in melody text
type ParseError struct {
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return "line " + strconv.Itoa(e.Line) + ": " + strconv.Quote(e.Token) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseNotes parses whitespace separated NAME:LENGTH tokens.
//
// NAME is a pitch (C4, FS5, C#5) or R for a rest. LENGTH is a length name
// (QN, DEN) or a unit count, optionally followed by '.' to dot it.
// A ';' comments out the rest of the line.
func ParseNotes(text string) ([]Note, error) {
	var notes []Note
	for i, line := range strings.Split(text, "\n") {
		if idx := strings.IndexByte(line, ';'); idx >= 0 {
			line = line[:idx]
		}
		for _, tok := range strings.Fields(line) {
			note, err := parseNote(tok)
			if err != nil {
				return nil, &ParseError{Line: i + 1, Token: tok, Err: err}
			}
			notes = append(notes, note)
		}
	}
	return notes, nil
}

func parseNote(tok string) (Note, error) {
	name, length, ok := strings.Cut(tok, ":")
	if !ok || name == "" || length == "" {
		return Note{}, ErrBadToken
	}

	pitch, ok := LookupPitch(name)
	if !ok {
		return Note{}, ErrPitch
	}

	dotted := strings.HasSuffix(length, ".")
	length = strings.TrimSuffix(length, ".")

	units, ok := LookupUnits(length)
	if !ok {
		n, err := strconv.ParseUint(length, 10, 8)
		if err != nil || n == 0 {
			return Note{}, ErrLength
		}
		units = Units(n)
	}
	if dotted {
		if uint32(units)+uint32(units)/2 > 255 {
			return Note{}, ErrLength
		}
		units = Dotted(units)
	}

	return Note{Pitch: pitch, Units: units}, nil
}

// FormatNotes writes notes back in the text notation
func FormatNotes(notes []Note) string {
	var b strings.Builder
	for i, n := range notes {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n.Pitch.String())
		b.WriteByte(':')
		b.WriteString(n.Units.String())
	}
	return b.String()
}

// WholeMS returns the tempo, falling back to DefaultTempo
func (m *Melody) WholeMS() uint32 {
	if m.Tempo == 0 {
		return DefaultTempo
	}
	return m.Tempo
}

// Millis returns the total playing time in milliseconds
func (m *Melody) Millis() uint32 {
	var total uint32
	whole := m.WholeMS()
	for _, n := range m.Notes {
		total += n.Units.Millis(whole)
	}
	return total
}
