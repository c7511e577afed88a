package music

import (
	"errors"
	"testing"
)

func TestLookupPitch(t *testing.T) {
	testCases := []struct {
		name     string
		expected Pitch
		ok       bool
	}{
		{"A4", 440, true},
		{"a4", 440, true},
		{"CS4", 277, true},
		{"C#4", 277, true},
		{"B0", 31, true},
		{"DS8", 4978, true},
		{"R", Rest, true},
		{"rest", Rest, true},
		{"H4", 0, false},
		{"C9", 0, false},
	}

	for _, tc := range testCases {
		p, ok := LookupPitch(tc.name)
		if p != tc.expected || ok != tc.ok {
			t.Errorf("LookupPitch(%q) = (%d, %v), expected (%d, %v)", tc.name, p, ok, tc.expected, tc.ok)
		}
	}
}

func TestPitchString(t *testing.T) {
	if s := FS5.String(); s != "FS5" {
		t.Errorf("FS5.String() = %q", s)
	}
	if s := Rest.String(); s != "R" {
		t.Errorf("Rest.String() = %q", s)
	}
	if s := Pitch(1000).String(); s != "1000Hz" {
		t.Errorf("Pitch(1000).String() = %q", s)
	}
}

func TestEachPitchAscending(t *testing.T) {
	var last Pitch
	count := 0
	EachPitch(func(name string, p Pitch) {
		if p <= last {
			t.Errorf("%s (%d) is not above %d", name, p, last)
		}
		last = p
		count++
	})
	// B0 through DS8
	if count != 89 {
		t.Errorf("EachPitch visited %d pitches, expected 89", count)
	}
}

func TestUnits(t *testing.T) {
	if Dotted(QN) != DQN || Dotted(EN) != DEN || Dotted(WN) != DWN {
		t.Error("Dotted lengths do not match the table")
	}
	if ms := QN.Millis(1600); ms != 400 {
		t.Errorf("QN.Millis(1600) = %d, expected 400", ms)
	}
	if ms := SN.Millis(1600); ms != 100 {
		t.Errorf("SN.Millis(1600) = %d, expected 100", ms)
	}
	if u, ok := LookupUnits("den"); !ok || u != DEN {
		t.Errorf("LookupUnits(den) = (%d, %v)", u, ok)
	}
	if s := Units(5).String(); s != "5" {
		t.Errorf("Units(5).String() = %q", s)
	}
}

func TestParseNotes(t *testing.T) {
	text := `
; opening
C4:QN E4:EN. R:SN
FS5:5 G#4:QN.   ; sharp spelled with #
`
	notes, err := ParseNotes(text)
	if err != nil {
		t.Fatalf("ParseNotes failed: %v", err)
	}

	expected := []Note{
		{C4, QN},
		{E4, DEN},
		{Rest, SN},
		{FS5, 5},
		{GS4, DQN},
	}
	if len(notes) != len(expected) {
		t.Fatalf("Parsed %d notes, expected %d", len(notes), len(expected))
	}
	for i := range expected {
		if notes[i] != expected[i] {
			t.Errorf("Note %d = %+v, expected %+v", i, notes[i], expected[i])
		}
	}

	if s := FormatNotes(notes); s != "C4:QN E4:DEN R:SN FS5:5 GS4:DQN" {
		t.Errorf("FormatNotes = %q", s)
	}
}

func TestParseNotesErrors(t *testing.T) {
	testCases := []struct {
		text string
		line int
		err  error
	}{
		{"C4", 1, ErrBadToken},
		{"C4:QN\n:QN", 2, ErrBadToken},
		{"X4:QN", 1, ErrPitch},
		{"C4:XX", 1, ErrLength},
		{"C4:0", 1, ErrLength},
		{"C4:200.", 1, ErrLength},
	}

	for _, tc := range testCases {
		_, err := ParseNotes(tc.text)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("ParseNotes(%q): expected ParseError, got %v", tc.text, err)
			continue
		}
		if perr.Line != tc.line || !errors.Is(err, tc.err) {
			t.Errorf("ParseNotes(%q) = line %d %v, expected line %d %v", tc.text, perr.Line, perr.Err, tc.line, tc.err)
		}
	}
}

func TestMelodyMillis(t *testing.T) {
	m := Melody{Notes: []Note{{C4, QN}, {Rest, QN}, {G4, HN}}}
	if m.WholeMS() != DefaultTempo {
		t.Errorf("WholeMS() = %d, expected default %d", m.WholeMS(), DefaultTempo)
	}
	if ms := m.Millis(); ms != 1600 {
		t.Errorf("Millis() = %d, expected 1600", ms)
	}
}

func TestPrelude(t *testing.T) {
	m := Prelude()
	if len(m.Notes) != 129 {
		t.Fatalf("Prelude has %d notes, expected 129", len(m.Notes))
	}
	if m.Notes[0] != (Note{C4, SN}) || m.Notes[4] != (Note{E5, SN}) || m.Notes[5] != (Note{G4, SN}) {
		t.Errorf("First bar starts %v", m.Notes[:6])
	}
	if last := m.Notes[128]; last != (Note{C4, HN}) {
		t.Errorf("Prelude ends on %+v, expected C4:HN", last)
	}
	// 8 bars of 16 sixteenths plus a half note
	if ms := m.Millis(); ms != 8*1600+800 {
		t.Errorf("Prelude lasts %d ms, expected %d", ms, 8*1600+800)
	}
}
