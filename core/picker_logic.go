package core

import (
	"errors"
	"slices"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jask/dualpick/core/element"
	"github.com/jask/dualpick/core/selection"
)

// ErrNoMarkup is returned by Attach when there is no usable element. The
// element stays plain and fully usable on its own.
var ErrNoMarkup = errors.New("picker: no markup to attach to")

type State int

const (
	StateUninitialized State = iota
	StateReady
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateDestroyed:
		return "destroyed"
	default:
		return "uninitialized"
	}
}

type Pane int

const (
	PaneAvailable Pane = iota
	PaneSelected
)

type Focus int

const (
	FocusAvailable Focus = iota
	FocusSelected
	FocusAvailableFilter
	FocusSelectionFilter
)

// Pane returns the pane a focus target belongs to.
func (f Focus) Pane() Pane {
	if f == FocusSelected || f == FocusSelectionFilter {
		return PaneSelected
	}
	return PaneAvailable
}

func (f Focus) IsFilter() bool {
	return f == FocusAvailableFilter || f == FocusSelectionFilter
}

// LocalizedText holds the button titles. Missing titles render empty.
type LocalizedText struct {
	AddTitle         string `json:"addTitle"`
	AddAllTitle      string `json:"addAllTitle"`
	RemoveTitle      string `json:"removeTitle"`
	RemoveAllTitle   string `json:"removeAllTitle"`
	MoveUpTitle      string `json:"moveUpTitle"`
	MoveDownTitle    string `json:"moveDownTitle"`
	ClearFilterTitle string `json:"clearFilterTitle"`
}

// Config is everything a picker instance is constructed with.
type Config struct {
	Widget       selection.Config
	WorkerScript string
	Text         LocalizedText
}

type PickerAction int

const (
	PickerActionNone PickerAction = iota
	PickerActionMoved
	PickerActionHighlighted
	PickerActionChanged
	PickerActionFiltered
	PickerActionFocused
	PickerActionSubmitted
	PickerActionCancelled
)

type PickerResult struct {
	Action    PickerAction
	Selection []string
}

// Row is one rendered line of a pane.
type Row struct {
	Option      selection.Option
	Cursor      bool
	Highlighted bool
}

// ButtonState tells which gestures would currently do something.
type ButtonState struct {
	Add       bool
	AddAll    bool
	Remove    bool
	RemoveAll bool
	MoveUp    bool
	MoveDown  bool
}

// Picker drives one two-pane widget. All methods run on the UI goroutine.
type Picker struct {
	state     State
	id        string
	el        *element.Element
	cfg       Config
	attached  bool
	store     *selection.Store
	keys      *KeyRegistry
	focus     Focus
	cursor    [2]int
	highlight [2]map[string]bool
	onChange  func([]string)
}

func NewPicker(keys *KeyRegistry) *Picker {
	if keys == nil {
		keys = NewKeyRegistry(DefaultKeyBindings())
	}
	return &Picker{keys: keys}
}

// OnChange registers fn to receive the submission order after every
// selection change.
func (p *Picker) OnChange(fn func([]string)) {
	if p == nil {
		return
	}
	p.onChange = fn
}

// Attach builds a fresh instance from el. Without a valid element the
// picker is left uninitialized and ErrNoMarkup is returned.
func (p *Picker) Attach(el *element.Element, cfg Config) error {
	if p == nil {
		return ErrNoMarkup
	}
	if err := el.Validate(); err != nil {
		return errors.Join(ErrNoMarkup, err)
	}
	opts, initial := el.Selection()
	p.el = el
	p.cfg = cfg
	p.attached = true
	p.store = selection.New(opts, initial, cfg.Widget)
	p.id = uuid.NewString()
	p.state = StateReady
	p.focus = FocusAvailable
	p.cursor = [2]int{}
	p.highlight = [2]map[string]bool{{}, {}}
	return nil
}

// Reattach rebinds the picker after the element may have been replaced.
// The same element again is a no-op; a different element rebuilds the
// instance with the previous configuration. It reports whether a rebuild
// happened.
func (p *Picker) Reattach(el *element.Element) bool {
	if p == nil || el == nil || !p.attached {
		return false
	}
	if p.state == StateReady && el == p.el {
		return false
	}
	return p.Attach(el, p.cfg) == nil
}

// Destroy ends the instance. Every gesture is ignored until the next Attach
// or Reattach.
func (p *Picker) Destroy() {
	if p == nil || p.state != StateReady {
		return
	}
	p.state = StateDestroyed
	p.store = nil
	p.el = nil
	p.highlight = [2]map[string]bool{}
}

func (p *Picker) State() State {
	if p == nil {
		return StateUninitialized
	}
	return p.state
}

func (p *Picker) Ready() bool {
	return p != nil && p.state == StateReady
}

func (p *Picker) InstanceID() string {
	if !p.Ready() {
		return ""
	}
	return p.id
}

func (p *Picker) Config() Config {
	if p == nil {
		return Config{}
	}
	return p.cfg
}

func (p *Picker) Element() *element.Element {
	if !p.Ready() {
		return nil
	}
	return p.el
}

func (p *Picker) Keys() *KeyRegistry {
	if p == nil {
		return nil
	}
	return p.keys
}

func (p *Picker) Focus() Focus {
	if p == nil {
		return FocusAvailable
	}
	return p.focus
}

// Scope is the key-binding scope of the current focus.
func (p *Picker) Scope() string {
	switch p.Focus() {
	case FocusSelected:
		return ScopeSelectedPane
	case FocusAvailableFilter:
		return ScopeAvailableFilter
	case FocusSelectionFilter:
		return ScopeSelectionFilter
	default:
		return ScopeAvailablePane
	}
}

// Submission returns the selection in the order it is submitted.
func (p *Picker) Submission() []string {
	if !p.Ready() {
		return nil
	}
	return p.store.SelectedKeys()
}

func (p *Picker) Query(pane Pane) string {
	if !p.Ready() {
		return ""
	}
	if pane == PaneSelected {
		return p.store.SelectionQuery()
	}
	return p.store.Query()
}

// Rows returns the visible rows of a pane.
func (p *Picker) Rows(pane Pane) []Row {
	if !p.Ready() {
		return nil
	}
	opts := p.visible(pane)
	rows := make([]Row, 0, len(opts))
	for i, o := range opts {
		rows = append(rows, Row{
			Option:      o,
			Cursor:      i == p.cursor[pane],
			Highlighted: p.highlight[pane][o.Key],
		})
	}
	return rows
}

// AvailableLabels lists the labels of every unselected option, visible or
// not.
func (p *Picker) AvailableLabels() []string {
	if !p.Ready() {
		return nil
	}
	avail := p.store.Available()
	out := make([]string, 0, len(avail))
	for _, o := range avail {
		out = append(out, o.Label)
	}
	return out
}

func (p *Picker) Buttons() ButtonState {
	if !p.Ready() {
		return ButtonState{}
	}
	w := p.cfg.Widget
	targets := p.targets(PaneSelected)
	return ButtonState{
		Add:       len(p.targets(PaneAvailable)) > 0,
		AddAll:    w.AllowMoveAll && len(p.store.Visible()) > 0,
		Remove:    len(targets) > 0,
		RemoveAll: w.AllowMoveAll && len(p.store.SelectedKeys()) > 0,
		MoveUp:    p.store.CanShift(targets, selection.Up),
		MoveDown:  p.store.CanShift(targets, selection.Down),
	}
}

func (p *Picker) SetFocus(f Focus) bool {
	if !p.Ready() || f == p.focus {
		return false
	}
	if f.IsFilter() && !p.cfg.Widget.Filter {
		return false
	}
	p.focus = f
	return true
}

// FocusNext cycles through the panes, visiting filters when enabled.
func (p *Picker) FocusNext(step int) bool {
	if !p.Ready() {
		return false
	}
	order := []Focus{FocusAvailable, FocusSelected}
	if p.cfg.Widget.Filter {
		order = []Focus{FocusAvailableFilter, FocusAvailable, FocusSelectionFilter, FocusSelected}
	}
	i := slices.Index(order, p.focus)
	next := order[((i+step)%len(order)+len(order))%len(order)]
	return p.SetFocus(next)
}

func (p *Picker) CursorUp() bool {
	return p.moveCursor(-1)
}

func (p *Picker) CursorDown() bool {
	return p.moveCursor(1)
}

// ToggleHighlight flips the highlight of the cursor row in the focused pane.
func (p *Picker) ToggleHighlight() bool {
	if !p.Ready() {
		return false
	}
	pane := p.focus.Pane()
	o, ok := p.cursorOption(pane)
	if !ok {
		return false
	}
	if p.highlight[pane][o.Key] {
		delete(p.highlight[pane], o.Key)
	} else {
		p.highlight[pane][o.Key] = true
	}
	return true
}

// HighlightOnly puts the cursor on row idx of pane and makes it the only
// highlighted row there. It is the plain-click gesture.
func (p *Picker) HighlightOnly(pane Pane, idx int) bool {
	if !p.Ready() {
		return false
	}
	opts := p.visible(pane)
	if idx < 0 || idx >= len(opts) {
		return false
	}
	p.focus = Focus(pane)
	p.cursor[pane] = idx
	clear(p.highlight[pane])
	p.highlight[pane][opts[idx].Key] = true
	return true
}

// Activate moves the cursor row of the focused pane to the other pane,
// ignoring highlights. It is the double-click gesture.
func (p *Picker) Activate() bool {
	if !p.Ready() {
		return false
	}
	pane := p.focus.Pane()
	o, ok := p.cursorOption(pane)
	if !ok {
		return false
	}
	keys := []string{o.Key}
	if pane == PaneSelected {
		if !p.store.MoveToAvailable(keys...) {
			return false
		}
		p.landIn(PaneAvailable, keys)
	} else {
		if !p.store.MoveToSelected(keys...) {
			return false
		}
		p.landIn(PaneSelected, keys)
	}
	p.changed()
	return true
}

// Add moves the highlighted available rows, or the cursor row when nothing
// is highlighted, into the selection.
func (p *Picker) Add() bool {
	if !p.Ready() {
		return false
	}
	keys := p.targets(PaneAvailable)
	if !p.store.MoveToSelected(keys...) {
		return false
	}
	p.landIn(PaneSelected, keys)
	p.changed()
	return true
}

// Remove moves the highlighted selected rows, or the cursor row, back to
// the available pane.
func (p *Picker) Remove() bool {
	if !p.Ready() {
		return false
	}
	keys := p.targets(PaneSelected)
	if !p.store.MoveToAvailable(keys...) {
		return false
	}
	p.landIn(PaneAvailable, keys)
	p.changed()
	return true
}

func (p *Picker) AddAll() bool {
	if !p.Ready() || !p.store.MoveAllToSelected() {
		return false
	}
	clear(p.highlight[PaneAvailable])
	clear(p.highlight[PaneSelected])
	p.changed()
	return true
}

func (p *Picker) RemoveAll() bool {
	if !p.Ready() || !p.store.MoveAllToAvailable() {
		return false
	}
	clear(p.highlight[PaneAvailable])
	clear(p.highlight[PaneSelected])
	p.changed()
	return true
}

func (p *Picker) MoveUp() bool {
	return p.shift(selection.Up)
}

func (p *Picker) MoveDown() bool {
	return p.shift(selection.Down)
}

// SetQuery replaces the filter text of a pane.
func (p *Picker) SetQuery(pane Pane, text string) bool {
	if !p.Ready() {
		return false
	}
	var changed bool
	if pane == PaneSelected {
		changed = p.store.SetSelectionQuery(text)
	} else {
		changed = p.store.SetQuery(text)
	}
	if changed {
		p.clampCursor(pane)
	}
	return changed
}

func (p *Picker) ClearQuery(pane Pane) bool {
	return p.SetQuery(pane, "")
}

// HandleKey maps a key name onto a gesture. While a filter has focus,
// printable keys edit its text.
func (p *Picker) HandleKey(keyName string) PickerResult {
	if !p.Ready() {
		return PickerResult{Action: PickerActionNone}
	}
	if p.focus.IsFilter() {
		pane := p.focus.Pane()
		q := p.Query(pane)
		switch {
		case keyName == "backspace":
			if q == "" {
				return PickerResult{Action: PickerActionNone}
			}
			_, size := utf8.DecodeLastRuneInString(q)
			return p.filtered(p.SetQuery(pane, q[:len(q)-size]))
		case keyName == "space":
			return p.filtered(p.SetQuery(pane, q+" "))
		case isPrintableKey(keyName):
			return p.filtered(p.SetQuery(pane, q+keyName))
		}
	}

	switch p.keys.Action(keyName, p.Scope()) {
	case ActionCursorUp:
		return p.result(p.CursorUp(), PickerActionMoved)
	case ActionCursorDown:
		return p.result(p.CursorDown(), PickerActionMoved)
	case ActionToggle:
		return p.result(p.ToggleHighlight(), PickerActionHighlighted)
	case ActionActivate:
		return p.result(p.Activate(), PickerActionChanged)
	case ActionAdd:
		return p.result(p.Add(), PickerActionChanged)
	case ActionRemove:
		return p.result(p.Remove(), PickerActionChanged)
	case ActionMove:
		if p.focus.Pane() == PaneSelected {
			return p.result(p.Remove(), PickerActionChanged)
		}
		return p.result(p.Add(), PickerActionChanged)
	case ActionAddAll:
		return p.result(p.AddAll(), PickerActionChanged)
	case ActionRemoveAll:
		return p.result(p.RemoveAll(), PickerActionChanged)
	case ActionMoveUp:
		return p.result(p.MoveUp(), PickerActionChanged)
	case ActionMoveDown:
		return p.result(p.MoveDown(), PickerActionChanged)
	case ActionFocusNext:
		return p.result(p.FocusNext(1), PickerActionFocused)
	case ActionFocusPrev:
		return p.result(p.FocusNext(-1), PickerActionFocused)
	case ActionFocusFilter:
		f := FocusAvailableFilter
		if p.focus.Pane() == PaneSelected {
			f = FocusSelectionFilter
		}
		return p.result(p.SetFocus(f), PickerActionFocused)
	case ActionLeaveFilter:
		f := FocusAvailable
		if p.focus.Pane() == PaneSelected {
			f = FocusSelected
		}
		return p.result(p.SetFocus(f), PickerActionFocused)
	case ActionClearFilter:
		return p.filtered(p.ClearQuery(p.focus.Pane()))
	case ActionSubmit:
		return PickerResult{Action: PickerActionSubmitted, Selection: p.Submission()}
	case ActionCancel:
		return PickerResult{Action: PickerActionCancelled}
	}
	return PickerResult{Action: PickerActionNone}
}

func (p *Picker) result(ok bool, action PickerAction) PickerResult {
	if !ok {
		return PickerResult{Action: PickerActionNone}
	}
	res := PickerResult{Action: action}
	if action == PickerActionChanged {
		res.Selection = p.Submission()
	}
	return res
}

func (p *Picker) filtered(ok bool) PickerResult {
	return p.result(ok, PickerActionFiltered)
}

func (p *Picker) visible(pane Pane) []selection.Option {
	if pane == PaneSelected {
		return p.store.VisibleSelection()
	}
	return p.store.Visible()
}

func (p *Picker) cursorOption(pane Pane) (selection.Option, bool) {
	opts := p.visible(pane)
	if len(opts) == 0 {
		return selection.Option{}, false
	}
	idx := min(max(p.cursor[pane], 0), len(opts)-1)
	return opts[idx], true
}

// targets returns the visible highlighted keys of a pane in pane order, or
// the cursor key when nothing visible is highlighted.
func (p *Picker) targets(pane Pane) []string {
	var keys []string
	for _, o := range p.visible(pane) {
		if p.highlight[pane][o.Key] {
			keys = append(keys, o.Key)
		}
	}
	if len(keys) > 0 {
		return keys
	}
	if o, ok := p.cursorOption(pane); ok {
		return []string{o.Key}
	}
	return nil
}

func (p *Picker) moveCursor(delta int) bool {
	if !p.Ready() {
		return false
	}
	pane := p.focus.Pane()
	n := len(p.visible(pane))
	if n == 0 {
		p.cursor[pane] = 0
		return false
	}
	next := min(max(p.cursor[pane]+delta, 0), n-1)
	if next == p.cursor[pane] {
		return false
	}
	p.cursor[pane] = next
	return true
}

func (p *Picker) shift(dir selection.Direction) bool {
	if !p.Ready() {
		return false
	}
	keys := p.targets(PaneSelected)
	cur, hasCur := p.cursorOption(PaneSelected)
	if !p.store.Shift(keys, dir) {
		return false
	}
	for _, k := range keys {
		p.highlight[PaneSelected][k] = true
	}
	if hasCur {
		p.cursorTo(PaneSelected, cur.Key)
	}
	p.changed()
	return true
}

// landIn highlights moved keys in the target pane and drops them from the
// source pane's highlight set.
func (p *Picker) landIn(target Pane, keys []string) {
	source := PaneAvailable
	if target == PaneAvailable {
		source = PaneSelected
	}
	clear(p.highlight[target])
	for _, k := range keys {
		delete(p.highlight[source], k)
		p.highlight[target][k] = true
	}
	p.clampCursor(source)
	p.clampCursor(target)
}

func (p *Picker) cursorTo(pane Pane, key string) {
	for i, o := range p.visible(pane) {
		if o.Key == key {
			p.cursor[pane] = i
			return
		}
	}
	p.clampCursor(pane)
}

func (p *Picker) clampCursor(pane Pane) {
	n := len(p.visible(pane))
	if n == 0 {
		p.cursor[pane] = 0
		return
	}
	p.cursor[pane] = min(max(p.cursor[pane], 0), n-1)
}

// changed pushes the selection into the element and notifies the listener.
func (p *Picker) changed() {
	keys := p.store.SelectedKeys()
	p.el.Apply(keys)
	p.clampCursor(PaneAvailable)
	p.clampCursor(PaneSelected)
	if p.onChange != nil {
		p.onChange(keys)
	}
}

func isPrintableKey(keyName string) bool {
	r, size := utf8.DecodeRuneInString(keyName)
	return size == len(keyName) && size > 0 && r >= 32 && r != 127
}
