package form

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SectionTitle renders the heading of a form section.
func SectionTitle(title string) string {
	return SectionTitleStyle.Render(title)
}

// Section stacks a title and its rows. Empty rows are skipped.
func Section(title string, rows ...string) string {
	parts := make([]string, 0, len(rows)+1)
	if title != "" {
		parts = append(parts, SectionTitle(title))
	}
	for _, r := range rows {
		if r != "" {
			parts = append(parts, r)
		}
	}
	return SectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Wrapper frames a whole form under its title.
func Wrapper(title string, sections ...string) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(" "+title+" ") + "\n\n")
	for _, s := range sections {
		if s == "" {
			continue
		}
		b.WriteString(s + "\n")
	}
	return WrapperStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// Overlay centers content over a width x height area, the way a dialog sits
// above the form it belongs to.
func Overlay(width, height int, content string) string {
	box := OverlayStyle.Render(content)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
