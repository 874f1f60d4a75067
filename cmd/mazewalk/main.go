// Command mazewalk replays a depth-first maze traversal in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mazewalk",
	Short: "Watch a depth-first search walk a maze",
	Long: `mazewalk loads mazes from a JSON or YAML file and replays a depth-first
traversal over one of them, either interactively or as a plain trace.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd, traceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
