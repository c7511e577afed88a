package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"gotone/core"
	"gotone/host/config"
	"gotone/music"
)

func Plan() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Show the timer configuration for pitches or frequencies",
		ArgsUsage: "<PITCH|HZ>...",
		Action:    runPlan,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "melody",
				Usage: "Plan every distinct pitch of a melody file",
			},
			&cli.UintFlag{
				Name:  "duration",
				Usage: "Tone length in milliseconds for the toggle count",
				Value: 1000,
			},
		},
	}
}

// planRow is one line of the plan table
type planRow struct {
	name      string
	frequency uint32
}

func runPlan(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	rows, err := planRows(c)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return cli.Exit("nothing to plan: give pitches, frequencies or --melody", 2)
	}

	duration := uint32(c.Uint("duration"))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NOTE\tHZ\tDIVIDER\tCOMPARE\tACTUAL\tTOGGLES\t")
	for _, row := range rows {
		fmt.Fprintln(w, formatPlan(cfg, row, duration))
	}
	return w.Flush()
}

func formatPlan(cfg config.Config, row planRow, duration uint32) string {
	if err := core.CheckFrequency(cfg.Board.ClockHz, row.frequency, cfg.MaxDivider()); err != nil {
		return fmt.Sprintf("%s\t%d\t-\t-\t-\t%v\t", row.name, row.frequency, err)
	}
	tc := core.PlanTone(cfg.Board.ClockHz, row.frequency)
	return fmt.Sprintf("%s\t%d\t%d (/%d)\t%d\t%d\t%d\t",
		row.name, row.frequency, tc.Divider, tc.Divider.Ratio(), tc.Compare, tc.ActualHz,
		core.ToggleCount(row.frequency, duration))
}

func planRows(c *cli.Context) ([]planRow, error) {
	var rows []planRow

	if path := c.String("melody"); path != "" {
		m, err := config.LoadMelody(path)
		if err != nil {
			return nil, err
		}
		seen := make(map[music.Pitch]bool)
		for _, n := range m.Notes {
			if n.Pitch == music.Rest || seen[n.Pitch] {
				continue
			}
			seen[n.Pitch] = true
			rows = append(rows, planRow{name: n.Pitch.String(), frequency: n.Pitch.Hz()})
		}
	}

	for _, arg := range c.Args().Slice() {
		if hz, err := strconv.ParseUint(arg, 10, 32); err == nil {
			rows = append(rows, planRow{name: "-", frequency: uint32(hz)})
			continue
		}
		p, ok := music.LookupPitch(arg)
		if !ok || p == music.Rest {
			return nil, fmt.Errorf("%q: %w", arg, music.ErrPitch)
		}
		rows = append(rows, planRow{name: p.String(), frequency: p.Hz()})
	}
	return rows, nil
}
