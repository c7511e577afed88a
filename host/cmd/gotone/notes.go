package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"gotone/music"
)

func Notes() *cli.Command {
	return &cli.Command{
		Name:   "notes",
		Usage:  "List pitch names and note lengths",
		Action: runNotes,
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  "tempo",
				Usage: "Whole-note length used for the length table",
				Value: music.DefaultTempo,
			},
		},
	}
}

func runNotes(c *cli.Context) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "PITCH\tHZ\t")
	music.EachPitch(func(name string, p music.Pitch) {
		fmt.Fprintf(w, "%s\t%d\t\n", name, p.Hz())
	})
	fmt.Fprintln(w, "R\trest\t")

	whole := uint32(c.Uint("tempo"))
	fmt.Fprintln(w, "\t\t")
	fmt.Fprintln(w, "LENGTH\tUNITS\tMS\t")
	for _, u := range []music.Units{
		music.FN, music.TN, music.DTN, music.SN, music.DSN, music.EN, music.DEN,
		music.QN, music.DQN, music.HN, music.DHN, music.WN, music.DWN,
	} {
		fmt.Fprintf(w, "%s\t%d\t%d\t\n", u, u, u.Millis(whole))
	}
	return w.Flush()
}
