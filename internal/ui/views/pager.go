package views

import (
	"fmt"
	"strings"

	"github.com/hance08/bankdash/internal/listview"
	"github.com/pterm/pterm"
)

// control renders a pager control, dimmed when it can not be used.
func control(label string, enabled bool) string {
	if enabled {
		return pterm.Cyan(label)
	}
	return pterm.Gray(label)
}

// RenderPager prints the footer under a list: page controls for paged
// lists, a reveal hint for progressive ones.
func RenderPager(info listview.PageInfo, noun string) {
	if info.Pages > 1 || info.CanPrev || info.CanNext {
		controls := strings.Join([]string{
			control("« First", info.CanPrev),
			control("‹ Prev", info.CanPrev),
			control("Next ›", info.CanNext),
			control("Last »", info.CanNext),
		}, "  ")
		pterm.Info.Printf("Page %d of %d (%d-%d of %d %s)   %s\n",
			info.Page, info.Pages, info.Start+1, info.End, info.Total, noun, controls)
		return
	}

	shown := info.End - info.Start
	if info.HasMore {
		pterm.Info.Printf("Showing %d of %d %s   %s\n", shown, info.Total, noun, control("Load more", true))
		return
	}
	pterm.Info.Printf("Total: %d %s\n", info.Total, noun)
}

// RenderQuery prints the active search state when it differs from the
// defaults.
func RenderQuery(q listview.Query) {
	var parts []string
	if q.Text != "" {
		parts = append(parts, fmt.Sprintf("search %q", q.Text))
	}
	if q.Category != "" && q.Category != listview.CategoryAll {
		parts = append(parts, "type "+q.Category)
	}
	if q.Sort != "" {
		parts = append(parts, "sorted by "+string(q.Sort))
	}
	if len(parts) > 0 {
		pterm.FgGray.Println(strings.Join(parts, " · "))
	}
}

// RenderLoadError shows a failed load inline, above whatever is still on
// screen.
func RenderLoadError(msg string) {
	if msg == "" {
		return
	}
	pterm.Error.Println(msg)
}
