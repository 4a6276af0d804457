package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for Aeon.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Subtle gradient (teal to violet)
	s1 := termenv.String("    _                   ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String("   / \\   ___  ___  _ __ ").Foreground(p.Color("#38bdf8"))
	s3 := termenv.String("  / _ \\ / _ \\/ _ \\| '_ \\").Foreground(p.Color("#60a5fa"))
	s4 := termenv.String(" / ___ \\  __/ (_) | | | |").Foreground(p.Color("#818cf8"))
	s5 := termenv.String("/_/   \\_\\___|\\___/|_| |_|").Foreground(p.Color("#a78bfa"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
