package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BenchTeal).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Slate).
			Italic(true)

	// Table column headings
	ColumnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BenchAmber)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BenchLime)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BenchRed)

	// Highlight style for important values
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(BenchAmber)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(Slate)

	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	// Box style for framed content
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BenchTeal).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)
)

// DisableColour strips colour from every style, for --no-color and
// non-terminal output
func DisableColour() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("scalebench"))
	PrintInfo(os.Stdout, "Version", version)
	PrintInfo(os.Stdout, "Go", runtime.Version())
	fmt.Println()
}

// PrintError prints an error message to stderr
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning prints a warning message to stderr
func PrintWarning(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", HighlightStyle.Render("Warning:"), message)
}

// PrintInfo prints a key/value line to w
func PrintInfo(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(value))
}

// PrintFailure reports a failed sweep to w: the failure code first, then
// the error
func PrintFailure(w io.Writer, code int, err error) {
	fmt.Fprintf(w, "failure: %d\n", code)
	fmt.Fprintf(w, "%s %v\n", ErrorStyle.Render("runtime error:"), err)
}

// FormatDuration formats a duration nicely
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
