package ui

import (
	"fmt"

	"github.com/pterm/pterm"
)

// PrintScreenTitle prints the banner at the top of a dashboard screen.
func PrintScreenTitle(format string, a ...any) {
	style := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)
	style.Println(fmt.Sprintf(" %s   ", fmt.Sprintf(format, a...)))
}

// PrintSectionTitle prints a heading inside a screen.
func PrintSectionTitle(format string, a ...any) {
	style := pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	style.Println(fmt.Sprintf("# %s", fmt.Sprintf(format, a...)))
}
