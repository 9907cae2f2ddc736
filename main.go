//go:build !( js || wasm)

package main

import (
	"github.com/cottand/circ/cmd"
	"github.com/spf13/cobra"
	"os"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "circ [subcommand]",
	Short:        "circ checks the types of circuit programs described in scenario files",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.CheckCmd)
	rootCmd.AddCommand(cmd.AbiCmd)
	rootCmd.AddCommand(cmd.LayoutCmd)
}
