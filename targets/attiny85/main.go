//go:build attiny85

// Trinket buzzer: plays the built-in prelude on a piezo between PB1 and
// ground, forever.
package main

import (
	"device/avr"
	"machine"
	"runtime/interrupt"
	"time"

	"gotone/core"
	"gotone/music"
)

// cpuHz is the Trinket system clock
const cpuHz = 8000000

// pauseMS separates repeats of the melody
const pauseMS = 2000

var drv *core.ToneDriver

func main() {
	buzzer := machine.PB1
	buzzer.Configure(machine.PinConfig{Mode: machine.PinOutput})

	drv = core.NewToneDriver(&timer1{clockHz: cpuHz})
	interrupt.New(avr.IRQ_TIMER1_COMPA, func(interrupt.Interrupt) {
		drv.OnToggleEvent()
	})

	player := core.NewPlayer(drv)
	start := time.Now()

	for {
		player.Play(music.Prelude(), elapsedMS(start))
		for !player.Done() {
			now := elapsedMS(start)
			core.SetTime(now)
			player.Poll(now)
		}
		time.Sleep(pauseMS * time.Millisecond)
	}
}

func elapsedMS(start time.Time) uint32 {
	return uint32(time.Since(start) / time.Millisecond)
}
