package sim

import (
	"io"
	"testing"
	"time"

	"gotone/core"
	"gotone/music"
)

func TestTimer1Period(t *testing.T) {
	timer := NewTimer1(8000000)
	var events int
	timer.SetHandler(func() { events++ })

	timer.SetToggleMode()
	timer.SetDivider(7)
	timer.SetCompareValue(141)
	timer.EnableCompletionInterrupt()

	// (141+1) * 64 ticks per match
	timer.Advance(9087)
	if events != 0 || timer.Pin() {
		t.Fatalf("Matched early: events=%d pin=%v", events, timer.Pin())
	}
	timer.Advance(1)
	if events != 1 || !timer.Pin() {
		t.Fatalf("Expected first match at 9088 ticks: events=%d pin=%v", events, timer.Pin())
	}
	timer.Advance(9088 * 3)
	if events != 4 || timer.Pin() {
		t.Errorf("Expected 4 matches and pin low, got %d %v", events, timer.Pin())
	}
}

func TestTimer1DividerMask(t *testing.T) {
	timer := NewTimer1(8000000)
	timer.SetDivider(0x13)
	if timer.Divider() != 3 {
		t.Errorf("Divider() = %d, expected the low four bits", timer.Divider())
	}
}

func TestTimer1NoInterruptWhenDisarmed(t *testing.T) {
	timer := NewTimer1(8000000)
	var events int
	timer.SetHandler(func() { events++ })

	timer.SetToggleMode()
	timer.SetDivider(core.DividerNone)
	timer.SetCompareValue(9)
	timer.Advance(100)

	if events != 0 {
		t.Errorf("Interrupt fired %d times while disarmed", events)
	}
	if timer.Matches() != 10 {
		t.Errorf("Matches() = %d, expected 10", timer.Matches())
	}
}

func TestTimer1Disable(t *testing.T) {
	timer := NewTimer1(8000000)
	timer.SetToggleMode()
	timer.SetDivider(core.DividerNone)
	timer.SetCompareValue(0)
	timer.Advance(1)

	timer.Disable()
	if timer.Running() || timer.Pin() {
		t.Error("Disable should stop the timer and drive the pin low")
	}
	timer.Advance(1000)
	if timer.Matches() != 1 {
		t.Errorf("Stopped timer kept counting: %d matches", timer.Matches())
	}
}

func TestMachineToneDuration(t *testing.T) {
	m := NewMachine(8000000)
	m.Tone.StartTone(440, 1000)

	// 880 toggles then one more match to stop: 881 * 9088 ticks = 1000.8ms
	m.AdvanceMS(1000)
	if !m.Tone.Active() {
		t.Fatal("Tone stopped before its duration")
	}
	if m.Timer.Matches() != 880 || m.Tone.Remaining() != 0 {
		t.Errorf("After 1000ms: matches=%d remaining=%d", m.Timer.Matches(), m.Tone.Remaining())
	}

	m.AdvanceMS(1)
	if m.Tone.Active() || m.Timer.Running() {
		t.Error("Tone should stop on the match after the count drains")
	}
	if m.Timer.Matches() != 881 {
		t.Errorf("Matches() = %d, expected 881", m.Timer.Matches())
	}
}

func TestMachineZeroDuration(t *testing.T) {
	m := NewMachine(8000000)
	m.Tone.StartTone(1000, 0)
	m.AdvanceMS(10)

	if m.Timer.Matches() != 1 || m.Tone.Active() {
		t.Errorf("Zero duration should stop on the first match, got %d", m.Timer.Matches())
	}
}

func TestMachinePlaysMelody(t *testing.T) {
	core.ClearTimingRing()
	defer core.ClearTimingRing()

	m := NewMachine(8000000)
	m.Play(music.Melody{Tempo: 1600, Notes: []music.Note{
		{Pitch: music.C4, Units: music.QN},
		{Pitch: music.Rest, Units: music.QN},
		{Pitch: music.G4, Units: music.QN},
	}})

	if !m.RunUntilDone(2000) {
		t.Fatal("Melody did not finish")
	}
	if m.Now() < 1200 {
		t.Errorf("Finished at %dms, expected at least 1200ms", m.Now())
	}

	var notes, rests int
	for _, evt := range core.TimingEvents() {
		switch evt.EventType {
		case core.EvtNoteLoad:
			notes++
		case core.EvtRest:
			rests++
		}
	}
	if notes != 2 || rests != 1 {
		t.Errorf("Recorded %d notes and %d rests, expected 2 and 1", notes, rests)
	}
}

func TestRenderer(t *testing.T) {
	m := NewMachine(8000000)
	m.Play(music.Melody{Tempo: 400, Notes: []music.Note{
		{Pitch: music.A4, Units: music.QN}, // 100ms
	}})

	r, err := NewRenderer(m, 8000, 0.5)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	pcm, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(pcm)%2 != 0 {
		t.Fatalf("Odd PCM length %d", len(pcm))
	}

	samples := len(pcm) / 2
	// 90ms of tone, the note boundary at 100ms, then a 100ms tail
	if samples < 8*190 || samples > 8*210 {
		t.Errorf("Rendered %d samples, expected about %d", samples, 8*200)
	}

	var high, low, zero int
	for i := 0; i < samples; i++ {
		s := int16(uint16(pcm[2*i]) | uint16(pcm[2*i+1])<<8)
		switch {
		case s > 0:
			high++
		case s < 0:
			low++
		default:
			zero++
		}
	}
	if high == 0 || low == 0 {
		t.Errorf("Expected a square wave, got high=%d low=%d", high, low)
	}
	if zero < 8*100 {
		t.Errorf("Expected at least 100ms of silence, got %d samples", zero)
	}
}

func TestRendererBadRate(t *testing.T) {
	if _, err := NewRenderer(NewMachine(8000000), 0, 0.3); err != ErrSampleRate {
		t.Errorf("Expected ErrSampleRate, got %v", err)
	}
}

func TestRendererClose(t *testing.T) {
	m := NewMachine(8000000)
	m.Play(music.Melody{Tempo: 400, Notes: []music.Note{
		{Pitch: music.A4, Units: music.WN},
	}})

	r, err := NewRenderer(m, 8000, 0.5)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	buf := make([]byte, 64)
	if n, err := r.Read(buf); n != 64 || err != nil {
		t.Fatalf("Read before Close = %d, %v", n, err)
	}

	r.Close()
	now := m.Now()
	if n, err := r.Read(buf); n != 0 || err != io.EOF {
		t.Errorf("Read after Close = %d, %v, expected 0, EOF", n, err)
	}
	if m.Now() != now {
		t.Errorf("Machine advanced to %dms after Close, expected %dms", m.Now(), now)
	}
}

func TestRendererCloseDuringRead(t *testing.T) {
	m := NewMachine(8000000)
	m.Play(music.Melody{Tempo: 60, Notes: []music.Note{
		{Pitch: music.A4, Units: music.WN},
	}})

	r, err := NewRenderer(m, 8000, 0.5)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	done := make(chan error)
	go func() {
		buf := make([]byte, 256)
		for {
			if _, err := r.Read(buf); err != nil {
				done <- err
				return
			}
		}
	}()

	time.Sleep(10 * time.Millisecond)
	r.Close()
	now := m.Now()

	select {
	case err := <-done:
		if err != io.EOF {
			t.Errorf("Reader stopped with %v, expected EOF", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Reader kept going after Close")
	}
	if m.Now() != now {
		t.Error("Machine advanced after Close returned")
	}
}
