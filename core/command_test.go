package core

import (
	"errors"
	"strings"
	"testing"

	"gotone/protocol"
)

func TestCommandRegistry(t *testing.T) {
	registry := NewCommandRegistry()

	// Register a command
	var called bool
	handler := func(data *[]byte) error {
		called = true
		return nil
	}

	id := registry.Register("test_command", "arg=%u", handler)

	if id != 0 {
		t.Errorf("Expected first command to have ID 0, got %d", id)
	}

	// Verify command can be retrieved
	cmd, ok := registry.GetCommand(id)
	if !ok {
		t.Fatal("Failed to retrieve registered command")
	}

	if cmd.Name != "test_command" {
		t.Errorf("Expected command name 'test_command', got '%s'", cmd.Name)
	}

	// Test dispatch
	var data []byte
	err := registry.Dispatch(id, &data)
	if err != nil {
		t.Errorf("Dispatch failed: %v", err)
	}

	if !called {
		t.Error("Command handler was not called")
	}

	// Test unknown command
	err = registry.Dispatch(999, &data)
	if err == nil {
		t.Error("Expected error for unknown command ID")
	}

	// Duplicate names keep their id
	if again := registry.Register("test_command", "", nil); again != id {
		t.Errorf("Re-registering returned ID %d, expected %d", again, id)
	}
	if registry.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", registry.Count())
	}
}

func TestDispatchResponse(t *testing.T) {
	registry := NewCommandRegistry()
	id := registry.Register("some_state", "value=%u", nil)

	var data []byte
	if err := registry.Dispatch(id, &data); !errors.Is(err, ErrNotACommand) {
		t.Errorf("Expected ErrNotACommand, got %v", err)
	}
}

type sentResponse struct {
	id   uint16
	args []uint32
}

func newToneCommands(t *testing.T) (*CommandRegistry, *ToneDriver, *[]sentResponse) {
	t.Helper()

	timer := newFakeTimer(8000000)
	timer.maxDiv = 10 // Lowest tone about 31 Hz
	drv := NewToneDriver(timer)
	registry := NewCommandRegistry()
	sent := &[]sentResponse{}

	send := func(id uint16, args func(output protocol.OutputBuffer)) {
		out := protocol.NewScratchOutput()
		args(out)
		data := out.Result()

		resp := sentResponse{id: id}
		for len(data) > 0 {
			v, err := protocol.DecodeVLQUint(&data)
			if err != nil {
				t.Fatalf("Bad response encoding: %v", err)
			}
			resp.args = append(resp.args, v)
		}
		*sent = append(*sent, resp)
	}

	if err := InitToneCommands(registry, drv, send); err != nil {
		t.Fatalf("InitToneCommands failed: %v", err)
	}
	return registry, drv, sent
}

func encodeArgs(values ...uint32) []byte {
	out := protocol.NewScratchOutput()
	for _, v := range values {
		protocol.EncodeVLQUint(out, v)
	}
	return append([]byte(nil), out.Result()...)
}

func TestInitToneCommands(t *testing.T) {
	registry, _, _ := newToneCommands(t)

	if registry.Count() != len(protocol.Commands) {
		t.Fatalf("Registered %d messages, expected %d", registry.Count(), len(protocol.Commands))
	}
	for i := range protocol.Commands {
		cmd, _ := registry.GetCommand(uint16(i))
		if cmd.Name != protocol.CommandName(uint16(i)) {
			t.Errorf("ID %d is %s, expected %s", i, cmd.Name, protocol.CommandName(uint16(i)))
		}
	}

	if _, ok := registry.Lookup("tone_state"); !ok {
		t.Error("tone_state response should be in the dictionary")
	}
	cmd, _ := registry.GetCommand(protocol.RspToneState)
	if cmd.Handler != nil {
		t.Error("tone_state is a response and should have no handler")
	}
}

func TestCommandDictionary(t *testing.T) {
	registry, _, _ := newToneCommands(t)

	lines := strings.Split(strings.TrimSuffix(registry.Dictionary(), "\n"), "\n")
	if len(lines) != len(protocol.Commands) {
		t.Fatalf("Dictionary has %d lines, expected %d", len(lines), len(protocol.Commands))
	}
	for id, line := range lines {
		if line != protocol.Commands[id] {
			t.Errorf("Line %d = %q, expected %q", id, line, protocol.Commands[id])
		}
	}
	if lines[0] != "tone_start frequency=%u duration=%u" {
		t.Errorf("First entry = %q", lines[0])
	}
}

func TestInitToneCommandsNonEmptyRegistry(t *testing.T) {
	registry := NewCommandRegistry()
	registry.Register("identify", "offset=%u count=%c", nil)

	drv := NewToneDriver(newFakeTimer(8000000))
	err := InitToneCommands(registry, drv, func(uint16, func(protocol.OutputBuffer)) {})
	if !errors.Is(err, ErrCommandTable) {
		t.Errorf("Expected ErrCommandTable, got %v", err)
	}
}

func TestToneStartCommand(t *testing.T) {
	registry, drv, _ := newToneCommands(t)

	data := encodeArgs(440, 1000)
	if err := registry.Dispatch(protocol.CmdToneStart, &data); err != nil {
		t.Fatalf("tone_start failed: %v", err)
	}
	if drv.Remaining() != 880 {
		t.Errorf("Remaining() = %d, expected 880", drv.Remaining())
	}
	if len(data) != 0 {
		t.Errorf("Handler left %d bytes undecoded", len(data))
	}
}

func TestToneStartRejectsOutOfRange(t *testing.T) {
	registry, drv, _ := newToneCommands(t)

	testCases := []struct {
		frequency uint32
		err       error
	}{
		{0, ErrZeroFrequency},
		{5000000, ErrFrequencyTooHigh},
		{10, ErrFrequencyTooLow},
	}

	for _, tc := range testCases {
		data := encodeArgs(tc.frequency, 100)
		err := registry.Dispatch(protocol.CmdToneStart, &data)
		if !errors.Is(err, tc.err) {
			t.Errorf("tone_start %d Hz: expected %v, got %v", tc.frequency, tc.err, err)
		}
	}
	if drv.Active() {
		t.Error("Rejected tones must not start the timer")
	}
}

func TestToneStartTruncated(t *testing.T) {
	registry, _, _ := newToneCommands(t)

	data := encodeArgs(440)
	if err := registry.Dispatch(protocol.CmdToneStart, &data); err == nil {
		t.Error("Expected error for missing duration")
	}
}

func TestToneQueryAndStop(t *testing.T) {
	registry, _, sent := newToneCommands(t)

	data := encodeArgs(1000, 250)
	registry.Dispatch(protocol.CmdToneStart, &data)

	data = nil
	if err := registry.Dispatch(protocol.CmdToneQuery, &data); err != nil {
		t.Fatalf("tone_query failed: %v", err)
	}
	registry.Dispatch(protocol.CmdToneStop, &data)
	registry.Dispatch(protocol.CmdToneQuery, &data)

	if len(*sent) != 2 {
		t.Fatalf("Expected 2 responses, got %d", len(*sent))
	}

	first := (*sent)[0]
	if first.id != protocol.RspToneState || len(first.args) != 2 || first.args[0] != 500 || first.args[1] != 1 {
		t.Errorf("Playing state = %+v, expected tone_state remaining=500 active=1", first)
	}
	second := (*sent)[1]
	if second.args[0] != 0 || second.args[1] != 0 {
		t.Errorf("Stopped state = %+v, expected remaining=0 active=0", second)
	}
}

func TestToneCheckCommand(t *testing.T) {
	registry, _, sent := newToneCommands(t)

	data := encodeArgs(440)
	registry.Dispatch(protocol.CmdToneCheck, &data)
	data = encodeArgs(10)
	registry.Dispatch(protocol.CmdToneCheck, &data)

	if len(*sent) != 2 {
		t.Fatalf("Expected 2 responses, got %d", len(*sent))
	}

	ok := (*sent)[0]
	expected := []uint32{440, 1, 7, 141}
	for i, v := range expected {
		if ok.args[i] != v {
			t.Errorf("tone_range arg %d = %d, expected %d", i, ok.args[i], v)
		}
	}

	if low := (*sent)[1]; low.args[1] != 0 {
		t.Errorf("10 Hz should be out of range, got %+v", low)
	}
}
