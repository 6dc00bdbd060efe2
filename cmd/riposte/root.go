package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "riposte",
	Short: "Riposte is a tick-driven interaction engine for game servers",
	Long: `Riposte compiles YAML interaction scripts into flat operation sequences
and executes them tick by tick, suspending whenever a script awaits data
from a client or another server subsystem.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("scripts", "./scripts", "Directory containing interaction scripts")
}
