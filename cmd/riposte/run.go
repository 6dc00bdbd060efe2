package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/riposte"
	"github.com/aretw0/riposte/internal/presentation/tui"
	"github.com/aretw0/riposte/pkg/adapters/fs"
	"github.com/aretw0/riposte/pkg/adapters/memory"
	"github.com/spf13/cobra"
)

// runCmd drives a single script interactively: the terminal stands in for
// the game server's tick loop and the player's client.
var runCmd = &cobra.Command{
	Use:   "run <script-id>",
	Short: "Run one interaction script interactively",
	Long: `Executes a script tick by tick against a dummy entity. Whenever the
script suspends awaiting data, you are prompted to deliver it, standing in
for the client packet or subsystem result a real server would provide.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("scripts")
		if err := runInteractive(dir, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// dummy is the stand-in entity the interactive runner executes against.
type dummy struct {
	health float64
}

func (d *dummy) ID() string          { return "dummy" }
func (d *dummy) Health() float64     { return d.health }
func (d *dummy) SetHealth(h float64) { d.health = h }
func (d *dummy) PlaySound(name string) {
	tui.Statusf("#fbbf24", "  ♪ %s", name)
}

func runInteractive(dir, scriptID string) error {
	tui.PrintBanner()

	eng, err := riposte.New(fs.New(dir))
	if err != nil {
		return err
	}

	entity := &dummy{health: 100}
	cooldowns := memory.NewCooldowns()
	ctx := context.Background()

	if err := eng.Begin(ctx, entity, entity, cooldowns, scriptID); err != nil {
		return err
	}
	tui.Statusf("#94a3b8", "Running %q against a dummy entity (health %.0f)", scriptID, entity.health)

	reader := bufio.NewReader(os.Stdin)
	tick := 0

	for {
		tick++
		eng.Tick(ctx, time.Now())

		active := eng.Active()
		if len(active) == 0 {
			tui.Statusf("#4ade80", "Finished after %d ticks, health %.0f", tick, entity.health)
			return nil
		}

		snap := active[0]
		if !snap.Waiting.Waiting() {
			continue
		}

		tui.Statusf("#fb923c", "Suspended at op %d awaiting %s data", snap.Counter, snap.Waiting)
		fmt.Print("  press Enter to deliver, or type 'cancel' > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "cancel" {
			eng.Cancel(ctx, entity.ID())
			tui.Statusf("#f87171", "Interaction cancelled, health %.0f", entity.health)
			return nil
		}
		eng.Deliver(ctx, entity.ID(), snap.Waiting, strings.TrimSpace(text))
	}
}
