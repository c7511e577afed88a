//go:build rp2040

// Bench buzzer: a speaker on GPIO15 plays tones commanded over USB CDC.
package main

import (
	"machine"
	"time"

	"gotone/core"
	"gotone/protocol"
)

var (
	// Buffers for communication
	inputBuffer  *protocol.FifoBuffer
	outputBuffer *protocol.ScratchOutput
	transport    *protocol.Transport

	registry *core.CommandRegistry
	drv      *core.ToneDriver
	speaker  *speakerTimer

	// Debug counters
	msgerrors uint32

	// USB connection state tracking
	usbWasDisconnected       bool
	consecutiveWriteFailures uint32
)

func main() {
	InitUSB()
	InitDebugUART()

	var err error
	speaker, err = newSpeakerTimer(machine.PWM7, machine.GPIO15)
	if err != nil {
		core.DebugPrintln("speaker: " + err.Error())
		for {
			time.Sleep(time.Second)
		}
	}
	drv = core.NewToneDriver(speaker)
	speaker.onEvent = drv.OnToggleEvent

	// Create buffers
	inputBuffer = protocol.NewFifoBuffer(256)
	outputBuffer = protocol.NewScratchOutput()

	transport = protocol.NewTransport(outputBuffer, handleCommand)
	transport.SetResetCallback(func() {
		// Clear buffers on host reset
		inputBuffer.Reset()
		outputBuffer.Reset()
		drv.Silence()
	})
	// Push ACKs out immediately so the host is not left waiting
	transport.SetFlushCallback(func() {
		writeUSB()
	})

	registry = core.NewCommandRegistry()
	if err := core.InitToneCommands(registry, drv, transport.SendResponse); err != nil {
		core.DebugPrintln("commands: " + err.Error())
	}
	core.DebugPrintln(registry.Dictionary())

	// Start USB reader goroutine
	go usbReaderLoop()

	for {
		// Recover from panics in the main loop to prevent a firmware crash
		func() {
			defer func() {
				if r := recover(); r != nil {
					msgerrors++
					debugEvent("main loop panic, link buffers reset")
					inputBuffer.Reset()
					outputBuffer.Reset()
				}
			}()

			now := UpdateSystemTime()
			speaker.Poll(now)

			if inputBuffer.Available() > 0 {
				transport.Receive(inputBuffer)
			}

			if len(outputBuffer.Result()) > 0 {
				writeUSB()
			}
		}()

		// Yield to other goroutines
		time.Sleep(10 * time.Microsecond)
	}
}

// usbReaderLoop runs in a goroutine to continuously read USB data
func usbReaderLoop() {
	// Recover from panics to prevent a firmware crash
	defer func() {
		if r := recover(); r != nil {
			msgerrors++
			debugEvent("usb reader panic, restarting")
			time.Sleep(100 * time.Millisecond)
			go usbReaderLoop()
		}
	}()

	for {
		if USBAvailable() > 0 {
			data, err := USBRead()
			if err != nil {
				msgerrors++
				time.Sleep(1 * time.Millisecond)
				continue
			}

			// Receiving again after a disconnect: start from a clean state
			if usbWasDisconnected {
				usbWasDisconnected = false
				inputBuffer.Reset()
				outputBuffer.Reset()
				transport.Reset()
				consecutiveWriteFailures = 0
			}

			if inputBuffer.Write([]byte{data}) == 0 {
				// Buffer full
				msgerrors++
				debugEvent("input buffer full, byte dropped")
				time.Sleep(10 * time.Millisecond)
			}
		}
		// Yield to avoid a busy loop
		time.Sleep(100 * time.Microsecond)
	}
}

// handleCommand dispatches received commands to the command registry
func handleCommand(cmdID uint16, data *[]byte) error {
	return registry.Dispatch(cmdID, data)
}

// writeUSB writes available data from output buffer to USB
func writeUSB() {
	result := outputBuffer.Result()
	written := 0
	for written < len(result) {
		n, err := USBWriteBytes(result[written:])
		if err != nil || n == 0 {
			// Likely disconnect; after repeated failures drop stale data
			consecutiveWriteFailures++
			if consecutiveWriteFailures > 10 {
				usbWasDisconnected = true
				consecutiveWriteFailures = 0
				outputBuffer.Reset()
				inputBuffer.Reset()
			}
			return
		}
		written += n
	}
	consecutiveWriteFailures = 0
	outputBuffer.Reset()
}
