package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"gotone/core"
	"gotone/host/buzzer"
	"gotone/host/config"
	"gotone/host/serial"
	"gotone/music"
)

func Check() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check that melody files only use frequencies the timer can produce",
		ArgsUsage: "<MELODY.yaml>...",
		Action:    runCheck,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "device",
				Usage: "Ask a buzzer board instead of the configured timer",
			},
		},
	}
}

func runCheck(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("no melody files given", 2)
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	var client *buzzer.Client
	if device := c.String("device"); device != "" {
		client, err = buzzer.Dial(&serial.Config{
			Device:      device,
			Baud:        cfg.Serial.Baud,
			ReadTimeout: cfg.Serial.ReadTimeout,
		}, logger)
		if err != nil {
			return err
		}
		defer client.Close()
	}

	failed := 0
	for _, path := range c.Args().Slice() {
		m, err := config.LoadMelody(path)
		if err == nil {
			if client != nil {
				err = checkRemote(client, &m)
			} else {
				err = core.CheckMelody(&m, newMachine(cfg).Timer)
			}
		}

		if err != nil {
			failed++
			logger.Error("melody not playable", "path", path, "err", err)
			continue
		}
		logger.Info("ok", "path", path, "title", m.Title, "notes", len(m.Notes), "ms", m.Millis())
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d melodies failed", failed, c.NArg()), 1)
	}
	return nil
}

// checkRemote asks the board about every distinct pitch
func checkRemote(client *buzzer.Client, m *music.Melody) error {
	checked := make(map[music.Pitch]bool)
	for i, n := range m.Notes {
		if n.Pitch == music.Rest || checked[n.Pitch] {
			continue
		}
		checked[n.Pitch] = true

		r, err := client.Check(n.Pitch.Hz())
		if err != nil {
			return err
		}
		if !r.OK {
			return &core.NoteError{Index: i, Note: n, Err: errors.New("out of the board's timer range")}
		}
	}
	return nil
}
