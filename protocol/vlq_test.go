package protocol

import (
	"bytes"
	"testing"
)

func TestVLQEncoding(t *testing.T) {
	testCases := []struct {
		value    int32
		expected []byte
	}{
		{0, []byte{0x00}},
		{95, []byte{0x5F}},
		{96, []byte{0x80, 0x60}},
		{440, []byte{0x83, 0x38}},
		{1000, []byte{0x87, 0x68}},
		{4978, []byte{0xA6, 0x72}},
		{-1, []byte{0x7F}},
		{-32, []byte{0x60}},
		{-33, []byte{0xFF, 0x5F}},
	}

	for _, tc := range testCases {
		output := NewScratchOutput()
		EncodeVLQInt(output, tc.value)
		if got := output.Result(); !bytes.Equal(got, tc.expected) {
			t.Errorf("EncodeVLQInt(%d) = %x, expected %x", tc.value, got, tc.expected)
		}
	}
}

func TestVLQRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 255, 880, 65535, 1000000, 0xFFFFFFFF}

	output := NewScratchOutput()
	for _, v := range values {
		EncodeVLQUint(output, v)
	}

	data := output.Result()
	for _, expected := range values {
		got, err := DecodeVLQUint(&data)
		if err != nil {
			t.Fatalf("Decode %d: %v", expected, err)
		}
		if got != expected {
			t.Errorf("VLQ mismatch: expected %d, got %d", expected, got)
		}
	}
	if len(data) != 0 {
		t.Errorf("%d bytes left over", len(data))
	}
}

func TestVLQBufferTooSmall(t *testing.T) {
	data := []byte{0x80} // Continuation byte with nothing after it
	if _, err := DecodeVLQInt(&data); err != ErrBufferTooSmall {
		t.Errorf("Expected ErrBufferTooSmall, got %v", err)
	}

	var empty []byte
	if _, err := DecodeVLQUint(&empty); err != ErrBufferTooSmall {
		t.Errorf("Expected ErrBufferTooSmall on empty input, got %v", err)
	}
}
