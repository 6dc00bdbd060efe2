package main

import (
	"fmt"
	"os"

	"github.com/aretw0/riposte"
	"github.com/aretw0/riposte/pkg/adapters/fs"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Compile every script and report errors",
	Long: `Compiles each script in the scripts directory and reports unknown
operations, bad parameters, undefined labels, and out-of-range jumps.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("scripts")
		if len(args) > 0 {
			dir = args[0]
		}
		if err := runValidate(dir); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(dir string) error {
	eng, err := riposte.New(fs.New(dir))
	if err != nil {
		return err
	}

	ids, err := eng.Scripts()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("no scripts found in %s", dir)
	}

	failures := 0
	for _, id := range ids {
		compiled, err := eng.Load(id)
		if err != nil {
			failures++
			fmt.Printf("  ✗ %s: %v\n", id, err)
			continue
		}
		fmt.Printf("  ✓ %s (%s, %d ops)\n", id, compiled.Kind, compiled.Program.Len())
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d scripts failed to compile", failures, len(ids))
	}
	fmt.Printf("All %d scripts compile ✅\n", len(ids))
	return nil
}
