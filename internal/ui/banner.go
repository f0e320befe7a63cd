package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal. Colors and the
// spinner are only worth emitting when it is.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of the terminal behind f, or fallback when
// f is not a terminal.
func TerminalWidth(f *os.File, fallback int) int {
	if !IsTerminal(f) {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// RenderBanner draws title and the optional subtitle lines inside a rounded
// box colored with the active banner palette.
func RenderBanner(title string, lines ...string) string {
	p := GetCurrentBannerPalette()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(p.Title)
	textStyle := lipgloss.NewStyle().Foreground(p.Text)

	body := []string{titleStyle.Render(title)}
	for _, l := range lines {
		body = append(body, textStyle.Render(l))
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 2)
	return box.Render(strings.Join(body, "\n"))
}

// RenderKeyValues aligns key/value pairs in two columns, keys dimmed.
func RenderKeyValues(pairs [][2]string) string {
	p := GetCurrentBannerPalette()
	width := 0
	for _, kv := range pairs {
		width = max(width, lipgloss.Width(kv[0]))
	}
	keyStyle := lipgloss.NewStyle().Foreground(p.Dim).Width(width + 2)
	rows := make([]string, len(pairs))
	for i, kv := range pairs {
		rows[i] = lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(kv[0]), kv[1])
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
