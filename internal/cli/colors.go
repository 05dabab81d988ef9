package cli

import "github.com/charmbracelet/lipgloss"

// Shared palette for the CLI and TUI
var (
	BenchTeal  = lipgloss.Color("#00A6A6") // Primary
	BenchLime  = lipgloss.Color("#B4E33D") // Bright end of gradients
	BenchAmber = lipgloss.Color("#F8B31D") // Highlights, matches the test card label
	BenchRed   = lipgloss.Color("#D7263D") // Errors

	// Accent colours
	Slate = lipgloss.Color("#7A8B99") // Subtle text
)
