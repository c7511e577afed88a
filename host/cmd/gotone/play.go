package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/urfave/cli/v2"

	"gotone/core"
	"gotone/host/buzzer"
	"gotone/host/config"
	"gotone/host/serial"
	"gotone/music"
	"gotone/sim"
)

func Play() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Play a melody on the simulated buzzer, or on a board with --device",
		ArgsUsage: "[MELODY.yaml]",
		Action:    runPlay,
		Flags: []cli.Flag{
			tempoFlag,
			&cli.StringFlag{
				Name:  "device",
				Usage: "Serial device of a buzzer board",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Write raw s16le mono PCM to a file instead of the speakers",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "Log the firmware timing ring after playback",
			},
		},
	}
}

func runPlay(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	m, err := melodyArg(c)
	if err != nil {
		return err
	}

	if device := c.String("device"); device != "" {
		return playRemote(c.Context, cfg, device, m)
	}
	return playSimulated(c, cfg, m)
}

func playRemote(ctx context.Context, cfg config.Config, device string, m music.Melody) error {
	client, err := buzzer.Dial(&serial.Config{
		Device:      device,
		Baud:        cfg.Serial.Baud,
		ReadTimeout: cfg.Serial.ReadTimeout,
	}, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	client.Articulation = cfg.Board.Articulation
	logger.Info("playing on board", "device", device, "title", m.Title, "ms", m.Millis())

	err = client.Play(ctx, m)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newMachine(cfg config.Config) *sim.Machine {
	machine := sim.NewMachine(cfg.Board.ClockHz)
	machine.Timer.SetMaxDivider(cfg.MaxDivider())
	machine.Player.Articulation = cfg.Board.Articulation
	return machine
}

func playSimulated(c *cli.Context, cfg config.Config, m music.Melody) error {
	machine := newMachine(cfg)
	if err := core.CheckMelody(&m, machine.Timer); err != nil {
		return err
	}

	if c.Bool("trace") {
		core.ClearTimingRing()
		core.SetDebugWriter(func(s string) { logger.Info(s) })
		defer core.DumpTimingRing()
	}

	machine.Play(m)
	renderer, err := sim.NewRenderer(machine, cfg.Audio.SampleRate, cfg.Audio.Volume)
	if err != nil {
		return err
	}

	if out := c.String("out"); out != "" {
		return renderToFile(out, renderer)
	}

	logger.Info("playing", "title", m.Title, "notes", len(m.Notes), "ms", m.Millis())
	return playAudio(c.Context, renderer)
}

func renderToFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("rendered", "path", path, "bytes", n)
	return nil
}

// playAudio streams the renderer to the default output device.
// The renderer is closed before returning, so the caller may touch the
// machine again afterwards.
func playAudio(ctx context.Context, r *sim.Renderer) error {
	op := &oto.NewContextOptions{
		SampleRate:   r.SampleRate(),
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	otoCtx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	player := otoCtx.NewPlayer(r)
	player.Play()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return stopAudio(r, player)
		case <-ticker.C:
		}
	}
	return stopAudio(r, player)
}

// stopAudio shuts the renderer before the player so that no oto read is
// still advancing the machine once it returns
func stopAudio(r *sim.Renderer, player io.Closer) error {
	r.Close()
	return player.Close()
}
