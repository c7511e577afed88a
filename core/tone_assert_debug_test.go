//go:build tonedebug

package core

import (
	"strings"
	"testing"
)

func TestStartToneAssertsRange(t *testing.T) {
	drv := NewToneDriver(newFakeTimer(8000000))

	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "must be positive") {
			t.Errorf("Expected range panic, got %v", r)
		}
	}()
	drv.StartTone(0, 100)
}
