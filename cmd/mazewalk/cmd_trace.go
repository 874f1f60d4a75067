package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/traversal"
	"github.com/spf13/cobra"
)

var traceIndex int

var traceCmd = &cobra.Command{
	Use:   "trace FILE",
	Short: "Print every step of a traversal without waiting between steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		grid, _, err := loadGrid(args[0], traceIndex)
		if err != nil {
			return err
		}
		return trace(cmd.OutOrStdout(), grid)
	},
}

func init() {
	traceCmd.Flags().IntVarP(&traceIndex, "index", "i", 0, "index of the maze inside FILE")
}

// trace runs a traversal over grid to completion and writes one line per
// step followed by the outcome.
func trace(w io.Writer, grid *maze.Grid) error {
	scheduler := &traversal.ManualScheduler{}
	engine, err := traversal.NewFromGrid(grid, traversal.WithScheduler(scheduler))
	if err != nil {
		return err
	}
	defer engine.Close()

	if _, ok := engine.StartPosition(); !ok {
		_, err := fmt.Fprintln(w, "maze has no start cell")
		return err
	}

	engine.Start()
	if err := writeStep(w, engine.Snapshot()); err != nil {
		return err
	}
	for scheduler.Advance() {
		if err := writeStep(w, engine.Snapshot()); err != nil {
			return err
		}
	}

	last := engine.Snapshot()
	_, err = fmt.Fprintf(w, "%s after %d steps, %d cells visited\n", last.Outcome, last.Step, last.Visited)
	return err
}

func writeStep(w io.Writer, s traversal.Snapshot) error {
	path := make([]string, len(s.Frontier))
	for idx, p := range s.Frontier {
		path[idx] = p.String()
	}
	_, err := fmt.Fprintf(w, "step %d: agent %s frontier [%s]\n", s.Step, s.Agent, strings.Join(path, " "))
	return err
}
