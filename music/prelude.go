package music

// preludeChords are the first eight bars of Bach's Prelude in C (BWV 846),
// each given as the five notes of its broken chord, lowest first.
var preludeChords = [...][5]Pitch{
	{C4, E4, G4, C5, E5},
	{C4, D4, A4, D5, F5},
	{B3, D4, G4, D5, F5},
	{C4, E4, G4, C5, E5},
	{C4, E4, A4, E5, A5},
	{C4, D4, FS4, A4, D5},
	{B3, D4, G4, D5, G5},
	{B3, C4, E4, G4, C5},
}

// Every bar plays its figure twice: 1 2 3 4 5 3 4 5
var preludeFigure = [...]uint8{0, 1, 2, 3, 4, 2, 3, 4}

var preludeNotes [len(preludeChords)*2*len(preludeFigure) + 1]Note

func init() {
	i := 0
	for _, chord := range preludeChords {
		for rep := 0; rep < 2; rep++ {
			for _, idx := range preludeFigure {
				preludeNotes[i] = Note{Pitch: chord[idx], Units: SN}
				i++
			}
		}
	}
	preludeNotes[i] = Note{Pitch: C4, Units: HN}
}

// Prelude returns the built-in melody
// The notes are backed by a static array; do not modify them.
func Prelude() Melody {
	return Melody{
		Title: "Prelude in C (J. S. Bach)",
		Tempo: DefaultTempo,
		Notes: preludeNotes[:],
	}
}
