package main

import (
	"time"

	"github.com/beka-birhanu/vinom-maze/traversal"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	runIndex int
	runDelay time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Replay a traversal interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		grid, name, err := loadGrid(args[0], runIndex)
		if err != nil {
			return err
		}
		engine, err := traversal.NewFromGrid(grid, traversal.WithStepDelay(runDelay))
		if err != nil {
			return err
		}
		defer engine.Close()

		_, err = tea.NewProgram(newModel(name, engine)).Run()
		return err
	},
}

func init() {
	runCmd.Flags().IntVarP(&runIndex, "index", "i", 0, "index of the maze inside FILE")
	runCmd.Flags().DurationVarP(&runDelay, "delay", "d", traversal.DefaultStepDelay, "pause between two steps")
}
