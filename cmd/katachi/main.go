package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "katachi",
	Short: "Find the most common local shapes in a collection of Go game records",
	Long: `katachi replays every SGF record of a directory and looks at the 5x5 neighbourhood of each stone played.
Neighbourhoods that are rotations, reflections or colour swaps of each other count as one pattern.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	rootCmd.AddCommand(inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
