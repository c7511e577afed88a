package buzzer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"gotone/core"
	"gotone/music"
	"gotone/protocol"
	"gotone/sim"
)

// fakeMCU runs the firmware command table on a simulated timer in memory
type fakeMCU struct {
	mu        sync.Mutex
	machine   *sim.Machine
	transport *protocol.Transport
	out       *protocol.ScratchOutput
	commands  []uint16
	toHost    chan []byte
	closed    chan struct{}
	once      sync.Once
}

func newFakeMCU(t *testing.T) *fakeMCU {
	t.Helper()

	m := &fakeMCU{
		machine: sim.NewMachine(8000000),
		out:     protocol.NewScratchOutput(),
		toHost:  make(chan []byte, 16),
		closed:  make(chan struct{}),
	}

	registry := core.NewCommandRegistry()
	m.transport = protocol.NewTransport(m.out, func(cmdID uint16, data *[]byte) error {
		m.commands = append(m.commands, cmdID)
		return registry.Dispatch(cmdID, data)
	})
	if err := core.InitToneCommands(registry, m.machine.Tone, m.transport.SendResponse); err != nil {
		t.Fatalf("InitToneCommands: %v", err)
	}
	return m
}

func (m *fakeMCU) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	in := protocol.NewFifoBuffer(len(p) + 1)
	in.Write(p)
	m.transport.Receive(in)
	if res := m.out.Result(); len(res) > 0 {
		m.toHost <- append([]byte(nil), res...)
		m.out.Reset()
	}
	return len(p), nil
}

func (m *fakeMCU) Read(p []byte) (int, error) {
	select {
	case b := <-m.toHost:
		return copy(p, b), nil
	case <-m.closed:
		return 0, io.EOF
	}
}

func (m *fakeMCU) Close() error {
	m.once.Do(func() { close(m.closed) })
	return nil
}

func (m *fakeMCU) received() []uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uint16(nil), m.commands...)
}

func newTestClient(t *testing.T) (*Client, *fakeMCU) {
	t.Helper()
	mcu := newFakeMCU(t)
	c := New(mcu, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { c.Close() })
	return c, mcu
}

func TestClientStartToneAndQuery(t *testing.T) {
	c, mcu := newTestClient(t)

	if err := c.StartTone(440, 1000); err != nil {
		t.Fatalf("StartTone: %v", err)
	}

	state, err := c.Query()
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if state.Remaining != 880 || !state.Active {
		t.Errorf("State = %+v, expected 880 toggles active", state)
	}

	if err := c.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	state, err = c.Query()
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if state.Active || state.Remaining != 0 {
		t.Errorf("State after stop = %+v", state)
	}

	if mcu.machine.Tone.Active() {
		t.Error("MCU driver still active after Stop")
	}
}

func TestClientCheck(t *testing.T) {
	c, _ := newTestClient(t)

	r, err := c.Check(440)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !r.OK || r.Divider != 7 || r.Compare != 141 || r.Frequency != 440 {
		t.Errorf("Range = %+v, expected divider 7 compare 141", r)
	}

	r, err = c.Check(5000000)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if r.OK {
		t.Errorf("5 MHz should be out of range, got %+v", r)
	}
}

func TestClientPlay(t *testing.T) {
	c, mcu := newTestClient(t)

	m := music.Melody{Tempo: 64, Notes: []music.Note{
		{Pitch: music.C5, Units: music.QN}, // 16ms
		{Pitch: music.Rest, Units: music.QN},
		{Pitch: music.E5, Units: music.QN},
	}}
	if err := c.Play(context.Background(), m); err != nil {
		t.Fatalf("Play: %v", err)
	}

	expected := []uint16{protocol.CmdToneStart, protocol.CmdToneStop, protocol.CmdToneStart}
	got := mcu.received()
	if len(got) != len(expected) {
		t.Fatalf("MCU received %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Command %d = %s, expected %s", i, protocol.CommandName(got[i]), protocol.CommandName(expected[i]))
		}
	}
}

func TestClientPlayCancel(t *testing.T) {
	c, mcu := newTestClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Play(ctx, music.Prelude())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected DeadlineExceeded, got %v", err)
	}

	got := mcu.received()
	if len(got) == 0 || got[len(got)-1] != protocol.CmdToneStop {
		t.Errorf("Cancelled playback should end with tone_stop, got %v", got)
	}
}

func TestClientPlayEmpty(t *testing.T) {
	c, _ := newTestClient(t)
	if err := c.Play(context.Background(), music.Melody{}); !errors.Is(err, core.ErrEmptyMelody) {
		t.Errorf("Expected ErrEmptyMelody, got %v", err)
	}
}
