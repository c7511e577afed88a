package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"gotone/core"
	"gotone/host/config"
	"gotone/protocol"
)

func Commands() *cli.Command {
	return &cli.Command{
		Name:   "commands",
		Usage:  "Print the message dictionary the firmware registers",
		Action: runCommands,
	}
}

func runCommands(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	table, err := commandTable(cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer, table)
	return nil
}

// commandTable registers the tone commands the way the firmware does
// and returns the resulting dictionary
func commandTable(cfg config.Config) (string, error) {
	reg := core.NewCommandRegistry()
	send := func(uint16, func(protocol.OutputBuffer)) {}
	if err := core.InitToneCommands(reg, newMachine(cfg).Tone, send); err != nil {
		return "", err
	}
	return reg.Dictionary(), nil
}
