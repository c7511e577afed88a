package music

import (
	"strconv"
	"strings"
)

// Units is a note length where 64 is a whole note
type Units uint8

// Note lengths
const (
	FN  Units = 1  // 64th note
	TN  Units = 2  // 32nd note
	DTN Units = 3  // dotted 32nd note
	SN  Units = 4  // 16th note
	DSN Units = 6  // dotted 16th note
	EN  Units = 8  // 8th note
	DEN Units = 12 // dotted 8th note
	QN  Units = 16 // quarter note
	DQN Units = 24 // dotted quarter note
	HN  Units = 32 // half note
	DHN Units = 48 // dotted half note
	WN  Units = 64 // whole note
	DWN Units = 96 // dotted whole note
)

// WholeUnits is the length of a whole note in Units
const WholeUnits = 64

var unitNames = [...]struct {
	name  string
	units Units
}{
	{"FN", FN}, {"TN", TN}, {"DTN", DTN}, {"SN", SN}, {"DSN", DSN},
	{"EN", EN}, {"DEN", DEN}, {"QN", QN}, {"DQN", DQN}, {"HN", HN},
	{"DHN", DHN}, {"WN", WN}, {"DWN", DWN},
}

// Dotted returns the length plus half of it
func Dotted(u Units) Units {
	return u + u/2
}

// Millis converts a length to milliseconds given the whole-note length
func (u Units) Millis(wholeMS uint32) uint32 {
	return uint32(u) * wholeMS / WholeUnits
}

// LookupUnits finds a note length by name, ignoring case
func LookupUnits(name string) (Units, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, n := range unitNames {
		if n.name == name {
			return n.units, true
		}
	}
	return 0, false
}

// String returns the length name, or the raw unit count
func (u Units) String() string {
	for _, n := range unitNames {
		if n.units == u {
			return n.name
		}
	}
	return strconv.Itoa(int(u))
}
