package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for Riposte.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Steel-to-ember gradient
	s1 := termenv.String(`       _                 _       `).Foreground(p.Color("#94a3b8"))
	s2 := termenv.String(`  _ __(_)_ __   ___  ___| |_ ___ `).Foreground(p.Color("#a8a29e"))
	s3 := termenv.String(` | '__| | '_ \ / _ \/ __| __/ _ \`).Foreground(p.Color("#fbbf24"))
	s4 := termenv.String(` | |  | | |_) | (_) \__ \ ||  __/`).Foreground(p.Color("#fb923c"))
	s5 := termenv.String(` |_|  |_| .__/ \___/|___/\__\___|`).Foreground(p.Color("#f87171"))
	s6 := termenv.String(`        |_|                      `).Foreground(p.Color("#ef4444"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}

// Statusf prints a colored status line, used by the interactive runner.
func Statusf(color, format string, args ...any) {
	p := termenv.ColorProfile()
	msg := termenv.String(fmt.Sprintf(format, args...)).Foreground(p.Color(color))
	fmt.Println(msg)
}
