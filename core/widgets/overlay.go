// Package widgets holds terminal drawing helpers that are independent of the
// picker state.
package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Popup is a bordered card drawn over the centre of a screen.
type Popup struct {
	Title string
	Body  string
}

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#89b4fa")).
			Padding(0, 2)
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
)

// Render draws the card on its own.
func (p Popup) Render() string {
	body := p.Body
	if p.Title != "" {
		body = cardTitleStyle.Render(p.Title) + "\n\n" + body
	}
	return cardStyle.Render(body)
}

// Overlay draws p centred over base. Base rows the card does not cover are
// kept, and base is padded or cut to exactly width by height cells.
func Overlay(base string, p Popup, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	canvas := canvasLines(base, width, height)
	card := strings.Split(p.Render(), "\n")
	cardW := 0
	for _, line := range card {
		cardW = max(cardW, ansi.StringWidth(line))
	}
	x := max((width-cardW)/2, 0)
	y := max((height-len(card))/2, 0)
	for i, line := range card {
		row := y + i
		if row >= height {
			break
		}
		canvas[row] = splice(canvas[row], fitWidth(line, cardW), x, width)
	}
	return strings.Join(canvas, "\n")
}

func canvasLines(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = fitWidth(lines[i], width)
	}
	return lines
}

// splice replaces the cells of row starting at column x with piece.
func splice(row, piece string, x, width int) string {
	left := ansi.Truncate(row, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(piece)
	right := strings.TrimPrefix(row, ansi.Truncate(row, end, ""))
	return fitWidth(left+piece+right, width)
}

func fitWidth(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
