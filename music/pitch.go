package music

import (
	"strconv"
	"strings"
)

// LookupPitch finds a pitch by name, ignoring case.
// Accepts S or # for sharp ("CS4", "C#4") and R or REST for a rest.
func LookupPitch(name string) (Pitch, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	name = strings.Replace(name, "#", "S", 1)
	if name == "R" || name == "REST" {
		return Rest, true
	}
	for _, p := range pitchNames {
		if p.name == name {
			return p.pitch, true
		}
	}
	return 0, false
}

// String returns the note name, or the frequency for unnamed pitches
func (p Pitch) String() string {
	if p == Rest {
		return "R"
	}
	for _, n := range pitchNames {
		if n.pitch == p {
			return n.name
		}
	}
	return strconv.Itoa(int(p)) + "Hz"
}

// Hz returns the frequency as the tone driver takes it
func (p Pitch) Hz() uint32 {
	return uint32(p)
}

// EachPitch calls fn for every named pitch in ascending order
func EachPitch(fn func(name string, p Pitch)) {
	for _, n := range pitchNames {
		fn(n.name, n.pitch)
	}
}
