/*
Package riposte is a tick-driven interaction execution engine for game
servers. Combat moves, abilities, and item uses are authored as small
scripts that compile to flat operation sequences; the engine advances every
active sequence once per server tick, suspends sequences awaiting external
data (a client packet, a server subsystem result), and resumes them when
that data arrives.

# Concept

A script is a linear list of operations plus labels and jumps. Compilation
resolves every label to a concrete index, so the runtime is a plain
program-counter loop with no tree walking. Control flow that spans time
(charge ticks, combo windows) is expressed as suspension: an operation
declares the data it waits for, and the sequence parks until the host
delivers it.

The engine is deliberately host-agnostic. The game server supplies entity
handles and a cooldown store through small interfaces; the engine supplies
execution, suspension bookkeeping, and observability hooks.

# Usage

	package main

	import (
		"context"
		"log"
		"time"

		"github.com/aretw0/riposte"
		"github.com/aretw0/riposte/pkg/adapters/fs"
	)

	func main() {
		eng, err := riposte.New(fs.New("./scripts"))
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		if err := eng.Begin(ctx, player, player, cooldowns, "charged-bolt"); err != nil {
			log.Fatal(err)
		}

		// Game loop: one engine tick per server tick.
		for range time.Tick(50 * time.Millisecond) {
			eng.Tick(ctx, time.Now())
		}
	}

When a client packet arrives for a suspended interaction, hand it over with
Deliver; the sequence resumes immediately:

	eng.Deliver(ctx, player.ID(), domain.WaitClient, packet)
*/
package riposte
