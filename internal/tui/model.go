// Package tui renders a picker in the terminal and turns key presses into
// picker gestures.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/dualpick/core"
	"github.com/jask/dualpick/core/element"
	"github.com/jask/dualpick/internal/binding"
)

// Options configure one picker screen.
type Options struct {
	Title   string
	Picker  core.Config
	Keys    *core.KeyRegistry
	Binding binding.Binding
	Logger  *zap.Logger
}

// Model is the bubbletea model of one picker instance.
type Model struct {
	ctx     context.Context
	picker  *core.Picker
	title   string
	binding binding.Binding
	logger  *zap.Logger
	inputs  [2]textinput.Model
	offset  [2]int

	width  int
	height int

	status    string
	statusErr bool
	saving    bool
	help      bool
	submitted bool
	cancelled bool
}

// New attaches a picker to el. The error wraps core.ErrNoMarkup when el
// cannot be enhanced; callers fall back to RunFallback.
func New(ctx context.Context, el *element.Element, opts Options) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	p := core.NewPicker(opts.Keys)
	if err := p.Attach(el, opts.Picker); err != nil {
		return nil, err
	}
	p.OnChange(func(keys []string) {
		logger.Debug("selection changed", zap.Strings("keys", keys))
	})
	m := &Model{
		ctx:     ctx,
		picker:  p,
		title:   opts.Title,
		binding: opts.Binding,
		logger:  logger,
		width:   80,
		height:  24,
	}
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = "/ "
		in.Placeholder = "filter"
		m.inputs[i] = in
	}
	m.syncInputs()
	m.clampOffsets()
	logger.Info("picker attached", zap.String("instance", p.InstanceID()), zap.String("element", el.ID))
	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Picker exposes the controller.
func (m *Model) Picker() *core.Picker {
	return m.picker
}

// Submitted reports whether the selection was saved before quitting.
func (m *Model) Submitted() bool {
	return m.submitted
}

func (m *Model) Cancelled() bool {
	return m.cancelled
}

// Selection returns the current selection in submission order.
func (m *Model) Selection() []string {
	return m.picker.Submission()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	m.clampOffsets()
	return next, cmd
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case core.ReattachMsg:
		if msg.Err != nil {
			m.setStatus("reload failed: "+msg.Err.Error(), true)
			return m, nil
		}
		if msg.Element != nil && m.picker.Reattach(msg.Element) {
			m.offset = [2]int{}
			m.syncInputs()
			m.setStatus(fmt.Sprintf("reloaded %d options", len(msg.Element.Options)), false)
			m.logger.Info("picker reattached", zap.String("instance", m.picker.InstanceID()))
		}
	case core.SelectionSavedMsg:
		m.saving = false
		if msg.Err != nil {
			m.setStatus("save failed: "+msg.Err.Error(), true)
			m.logger.Error("save selection", zap.Error(msg.Err))
			return m, nil
		}
		m.submitted = true
		m.logger.Info("selection saved", zap.Int("selected", len(msg.Keys)))
		return m, tea.Quit
	case core.StatusMsg:
		m.setStatus(msg.Text, msg.IsErr)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	if m.help {
		m.help = false
		return m, nil
	}
	p := m.picker
	name := msg.String()
	if p.Keys().Action(name, p.Scope()) == core.ActionHelp {
		m.help = true
		return m, nil
	}
	if f := p.Focus(); f.IsFilter() && p.Keys().Action(name, p.Scope()) == "" {
		pane := f.Pane()
		var cmd tea.Cmd
		m.inputs[pane], cmd = m.inputs[pane].Update(msg)
		if p.SetQuery(pane, m.inputs[pane].Value()) {
			m.offset[pane] = 0
		}
		return m, cmd
	}

	res := p.HandleKey(name)
	m.syncInputs()
	switch res.Action {
	case core.PickerActionSubmitted:
		return m, m.save(res.Selection)
	case core.PickerActionCancelled:
		m.cancelled = true
		return m, tea.Quit
	case core.PickerActionChanged:
		m.setStatus(fmt.Sprintf("%d selected", len(res.Selection)), false)
	}
	return m, nil
}

// handleMouse maps a left click on a row to a plain-click highlight; a
// second click on the same row moves it to the other pane.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	pane, idx, ok := m.rowAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	rows := m.picker.Rows(pane)
	if m.picker.Focus() == core.Focus(pane) && rows[idx].Cursor && rows[idx].Highlighted && m.onlyHighlight(rows) {
		if m.picker.Activate() {
			m.syncInputs()
			m.setStatus(fmt.Sprintf("%d selected", len(m.picker.Submission())), false)
		}
		return m, nil
	}
	m.picker.HighlightOnly(pane, idx)
	m.syncInputs()
	return m, nil
}

func (m *Model) onlyHighlight(rows []core.Row) bool {
	n := 0
	for _, r := range rows {
		if r.Highlighted {
			n++
		}
	}
	return n == 1
}

func (m *Model) save(keys []string) tea.Cmd {
	if m.binding == nil {
		m.submitted = true
		return tea.Quit
	}
	m.saving = true
	m.setStatus("saving...", false)
	ctx, b := m.ctx, m.binding
	return func() tea.Msg {
		err := b.WriteSelection(ctx, keys)
		return core.SelectionSavedMsg{Keys: keys, Err: err}
	}
}

// syncInputs mirrors the picker's queries and focus into the text inputs.
func (m *Model) syncInputs() {
	for _, pane := range []core.Pane{core.PaneAvailable, core.PaneSelected} {
		in := &m.inputs[pane]
		if q := m.picker.Query(pane); in.Value() != q {
			in.SetValue(q)
			in.CursorEnd()
		}
		if m.picker.Focus().IsFilter() && m.picker.Focus().Pane() == pane {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}
