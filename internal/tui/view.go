package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/dualpick/core"
	"github.com/jask/dualpick/core/filtering"
	"github.com/jask/dualpick/core/widgets"
)

// paneChrome is the number of lines a pane uses besides its rows: two
// border lines and the title.
const paneChrome = 3

type layout struct {
	vertical bool
	header   int // lines above the panes
	paneW    int // outer width of a pane
	buttonW  int
	filter   int // 1 when filter inputs are shown
	rowsH    int
}

type button struct {
	glyph   string
	title   string
	enabled bool
}

func (m *Model) buttons() []button {
	cfg := m.picker.Config()
	st := m.picker.Buttons()
	t := cfg.Text
	var out []button
	if cfg.Widget.AllowOrder {
		out = append(out, button{"▲", t.MoveUpTitle, st.MoveUp})
	}
	if cfg.Widget.AllowMoveAll {
		out = append(out, button{"»", t.AddAllTitle, st.AddAll})
	}
	out = append(out,
		button{"›", t.AddTitle, st.Add},
		button{"‹", t.RemoveTitle, st.Remove},
	)
	if cfg.Widget.AllowMoveAll {
		out = append(out, button{"«", t.RemoveAllTitle, st.RemoveAll})
	}
	if cfg.Widget.AllowOrder {
		out = append(out, button{"▼", t.MoveDownTitle, st.MoveDown})
	}
	return out
}

func (b button) label() string {
	if b.title == "" {
		return b.glyph
	}
	return b.glyph + " " + b.title
}

func (m *Model) layout() layout {
	cfg := m.picker.Config()
	l := layout{vertical: cfg.Widget.Vertical}
	if m.title != "" {
		l.header = 1
	}
	if cfg.Widget.Filter {
		l.filter = 1
	}
	avail := max(m.height-l.header-2, 0) // status bar and footer
	if l.vertical {
		l.paneW = max(m.width, 20)
		l.rowsH = max((avail-1-2*(paneChrome+l.filter))/2, 1)
		return l
	}
	for _, b := range m.buttons() {
		l.buttonW = max(l.buttonW, ansi.StringWidth(b.label())+2)
	}
	l.paneW = max((m.width-l.buttonW)/2, 12)
	l.rowsH = max(avail-paneChrome-l.filter, 1)
	return l
}

// rowAt maps a screen cell to a pane row.
func (m *Model) rowAt(x, y int) (core.Pane, int, bool) {
	l := m.layout()
	top := l.header + 2 + l.filter // border and title
	pane := core.PaneAvailable
	if l.vertical {
		second := l.header + paneChrome + l.filter + l.rowsH + 1
		if y >= second {
			pane = core.PaneSelected
			top = second + 2 + l.filter
		}
	} else {
		switch {
		case x < l.paneW:
		case x >= l.paneW+l.buttonW && x < 2*l.paneW+l.buttonW:
			pane = core.PaneSelected
		default:
			return 0, 0, false
		}
	}
	line := y - top
	if line < 0 || line >= l.rowsH {
		return 0, 0, false
	}
	idx := m.offset[pane] + line
	if idx >= len(m.picker.Rows(pane)) {
		return 0, 0, false
	}
	return pane, idx, true
}

func (m *Model) View() string {
	l := m.layout()
	var sections []string
	if m.title != "" {
		sections = append(sections, core.PaneTitleStyle.Render(ansi.Truncate(m.title, m.width, "…")))
	}

	avail := m.renderPane(core.PaneAvailable, l)
	sel := m.renderPane(core.PaneSelected, l)
	if l.vertical {
		sections = append(sections, avail, m.renderButtonRow(), sel)
	} else {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, avail, m.renderButtonColumn(l), sel))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	body = core.ClipHeight(body, max(m.height-2, 1))
	scope := m.picker.Scope()
	screen := body + "\n" + core.RenderStatusBar(m.statusText(), m.statusErr, m.width) + "\n" + core.RenderFooter(m.picker.Keys(), scope, m.width)
	if m.help {
		return widgets.Overlay(screen, widgets.Popup{Title: "Keys", Body: m.helpText(scope)}, m.width, m.height)
	}
	return screen
}

// helpText lists every binding active in scope, one per line.
func (m *Model) helpText(scope string) string {
	bindings := m.picker.Keys().BindingsForScope(scope)
	keyW := 0
	for _, b := range bindings {
		keyW = max(keyW, ansi.StringWidth(strings.Join(b.Keys, "/")))
	}
	lines := make([]string, 0, len(bindings)+2)
	for _, b := range bindings {
		k := strings.Join(b.Keys, "/")
		lines = append(lines, k+strings.Repeat(" ", keyW-ansi.StringWidth(k)+2)+b.Description)
	}
	lines = append(lines, "", core.HintStyle.Render("any key to close"))
	return strings.Join(lines, "\n")
}

func (m *Model) statusText() string {
	if m.status != "" {
		return m.status
	}
	return m.closestHint()
}

// closestHint suggests the nearest hidden label when the available query
// hides every option.
func (m *Model) closestHint() string {
	q := m.picker.Query(core.PaneAvailable)
	if strings.TrimSpace(q) == "" || len(m.picker.Rows(core.PaneAvailable)) > 0 {
		return ""
	}
	label, ok := filtering.Closest(q, m.picker.AvailableLabels())
	if !ok {
		return fmt.Sprintf("no match for %q", q)
	}
	return fmt.Sprintf("no match for %q, closest: %s", q, label)
}

func (m *Model) renderPane(pane core.Pane, l layout) string {
	rows := m.picker.Rows(pane)
	focus := m.picker.Focus()
	style := core.PaneStyle
	if focus.Pane() == pane {
		style = core.FocusedPaneStyle
	}
	inner := max(l.paneW-4, 4) // border and padding

	name := "Available"
	if pane == core.PaneSelected {
		name = "Selected"
	}
	lines := []string{core.PaneTitleStyle.Render(fmt.Sprintf("%s (%d)", name, len(rows)))}
	if l.filter == 1 {
		in := m.inputs[pane]
		in.Width = max(inner-4, 1)
		line := in.View()
		if t := m.picker.Config().Text.ClearFilterTitle; t != "" && m.picker.Query(pane) != "" {
			line += " " + core.HintStyle.Render("ctrl+u "+t)
		}
		lines = append(lines, ansi.Truncate(line, inner, ""))
	}

	if len(rows) == 0 {
		lines = append(lines, core.EmptyPaneStyle.Render("(empty)"))
	}
	start := min(m.offset[pane], len(rows))
	end := min(start+l.rowsH, len(rows))
	for _, r := range rows[start:end] {
		lines = append(lines, renderRow(r, inner, focus.Pane() == pane && !focus.IsFilter()))
	}
	for len(lines) < l.rowsH+1+l.filter {
		lines = append(lines, "")
	}
	return style.Width(l.paneW - 2).Render(strings.Join(lines, "\n"))
}

func renderRow(r core.Row, width int, focused bool) string {
	mark := "  "
	if r.Highlighted {
		mark = "• "
	}
	text := ansi.Truncate(mark+r.Option.Label, width, "…")
	switch {
	case r.Cursor && focused:
		return core.CursorRowStyle.Width(width).Render(text)
	case r.Highlighted:
		return core.MarkedRowStyle.Render(text)
	default:
		return core.RowStyle.Render(text)
	}
}

// clampOffsets keeps the cursor row of each pane inside its visible window.
func (m *Model) clampOffsets() {
	h := m.layout().rowsH
	for _, pane := range []core.Pane{core.PaneAvailable, core.PaneSelected} {
		m.scroll(pane, m.picker.Rows(pane), h)
	}
}

// scroll keeps the cursor row inside the visible window.
func (m *Model) scroll(pane core.Pane, rows []core.Row, height int) {
	cur := 0
	for i, r := range rows {
		if r.Cursor {
			cur = i
			break
		}
	}
	off := m.offset[pane]
	if cur < off {
		off = cur
	}
	if cur >= off+height {
		off = cur - height + 1
	}
	m.offset[pane] = max(min(off, max(len(rows)-height, 0)), 0)
}

func renderButton(b button) string {
	if b.enabled {
		return core.ButtonStyle.Render(b.label())
	}
	return core.DisabledButton.Render(b.label())
}

func (m *Model) renderButtonColumn(l layout) string {
	lines := []string{""}
	for _, b := range m.buttons() {
		lines = append(lines, renderButton(b))
	}
	return lipgloss.NewStyle().Width(l.buttonW).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderButtonRow() string {
	var parts []string
	for _, b := range m.buttons() {
		parts = append(parts, renderButton(b))
	}
	return ansi.Truncate(strings.Join(parts, " "), m.width, "")
}
