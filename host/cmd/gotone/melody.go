package main

import (
	"github.com/urfave/cli/v2"

	"gotone/host/config"
	"gotone/music"
)

// melodyArg loads the melody file named by the first argument, or returns
// the built-in prelude
func melodyArg(c *cli.Context) (music.Melody, error) {
	var m music.Melody
	if path := c.Args().First(); path != "" {
		var err error
		if m, err = config.LoadMelody(path); err != nil {
			return music.Melody{}, err
		}
	} else {
		m = music.Prelude()
	}

	if tempo := c.Uint("tempo"); tempo != 0 {
		m.Tempo = uint32(tempo)
	}
	return m, nil
}

var tempoFlag = &cli.UintFlag{
	Name:  "tempo",
	Usage: "Override the whole-note length in milliseconds",
}
