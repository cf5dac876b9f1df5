// Package selection holds the state behind a two-pane picker: which options
// are available, which are selected and in what order, and which of them the
// current queries leave visible.
//
// Every mutation returns whether it changed anything so callers can decide
// whether to resynchronize the underlying element and notify listeners.
// Keys that are not part of the option set are ignored.
package selection

import (
	"cmp"
	"slices"

	"github.com/jask/dualpick/core/filtering"
)

// Option is one selectable item.
type Option struct {
	Key         string
	Label       string
	Index       int
	FilterWords []string
}

// Config is fixed for the lifetime of a store.
type Config struct {
	AllowOrder   bool
	AllowMoveAll bool
	Vertical     bool
	Filter       bool
	CustomClass  string
	Match        filtering.MatchMode
}

type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// Store is the single source of truth for both panes.
type Store struct {
	cfg      Config
	options  []Option
	sources  []string
	byKey    map[string]int
	selected []string
	inSel    map[string]bool
	query    string
	selQuery string
}

// New builds a store. Options are kept in ordinal order; a repeated key keeps
// its first occurrence. Unknown and repeated keys in initial are dropped.
func New(options []Option, initial []string, cfg Config) *Store {
	s := &Store{
		cfg:   cfg,
		byKey: make(map[string]int, len(options)),
		inSel: make(map[string]bool, len(initial)),
	}
	seen := make(map[string]bool, len(options))
	for _, o := range options {
		if seen[o.Key] {
			continue
		}
		seen[o.Key] = true
		o.FilterWords = slices.Clone(o.FilterWords)
		s.options = append(s.options, o)
	}
	slices.SortStableFunc(s.options, func(a, b Option) int { return cmp.Compare(a.Index, b.Index) })
	s.sources = make([]string, len(s.options))
	for i, o := range s.options {
		s.byKey[o.Key] = i
		s.sources[i] = filtering.Source(o.Label, o.FilterWords)
	}
	for _, k := range initial {
		if _, ok := s.byKey[k]; !ok || s.inSel[k] {
			continue
		}
		s.inSel[k] = true
		s.selected = append(s.selected, k)
	}
	return s
}

func (s *Store) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.cfg
}

// Options returns every option in ordinal order.
func (s *Store) Options() []Option {
	if s == nil {
		return nil
	}
	return slices.Clone(s.options)
}

func (s *Store) Lookup(key string) (Option, bool) {
	if s == nil {
		return Option{}, false
	}
	i, ok := s.byKey[key]
	if !ok {
		return Option{}, false
	}
	return s.options[i], true
}

func (s *Store) IsSelected(key string) bool {
	return s != nil && s.inSel[key]
}

// Available returns the unselected options in ordinal order, ignoring the
// query.
func (s *Store) Available() []Option {
	if s == nil {
		return nil
	}
	out := make([]Option, 0, len(s.options)-len(s.selected))
	for _, o := range s.options {
		if !s.inSel[o.Key] {
			out = append(out, o)
		}
	}
	return out
}

// Visible returns the available options that match the current query.
func (s *Store) Visible() []Option {
	if s == nil {
		return nil
	}
	out := make([]Option, 0, len(s.options)-len(s.selected))
	for i, o := range s.options {
		if s.inSel[o.Key] || !s.matches(i, s.query) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// IsVisible reports whether key is available and matches the query.
func (s *Store) IsVisible(key string) bool {
	if s == nil {
		return false
	}
	i, ok := s.byKey[key]
	return ok && !s.inSel[key] && s.matches(i, s.query)
}

// Selection returns the selected options in selection order.
func (s *Store) Selection() []Option {
	if s == nil {
		return nil
	}
	out := make([]Option, 0, len(s.selected))
	for _, k := range s.selected {
		out = append(out, s.options[s.byKey[k]])
	}
	return out
}

// VisibleSelection returns the selected options matching the selection
// query, in selection order.
func (s *Store) VisibleSelection() []Option {
	if s == nil {
		return nil
	}
	out := make([]Option, 0, len(s.selected))
	for _, k := range s.selected {
		i := s.byKey[k]
		if s.matches(i, s.selQuery) {
			out = append(out, s.options[i])
		}
	}
	return out
}

// SelectedKeys returns the selection in submission order.
func (s *Store) SelectedKeys() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.selected)
}

func (s *Store) Query() string {
	if s == nil {
		return ""
	}
	return s.query
}

func (s *Store) SelectionQuery() string {
	if s == nil {
		return ""
	}
	return s.selQuery
}

// MoveToSelected appends keys to the selection in the order given.
func (s *Store) MoveToSelected(keys ...string) bool {
	if s == nil {
		return false
	}
	changed := false
	for _, k := range keys {
		if _, ok := s.byKey[k]; !ok || s.inSel[k] {
			continue
		}
		s.inSel[k] = true
		s.selected = append(s.selected, k)
		changed = true
	}
	return changed
}

// MoveToAvailable removes keys from the selection. The available pane keeps
// ordinal order, so no position needs to be remembered.
func (s *Store) MoveToAvailable(keys ...string) bool {
	if s == nil {
		return false
	}
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		if s.inSel[k] {
			drop[k] = true
		}
	}
	if len(drop) == 0 {
		return false
	}
	s.selected = slices.DeleteFunc(s.selected, func(k string) bool { return drop[k] })
	for k := range drop {
		delete(s.inSel, k)
	}
	return true
}

// MoveAllToSelected selects every visible available option. Options hidden
// by the query stay available.
func (s *Store) MoveAllToSelected() bool {
	if s == nil || !s.cfg.AllowMoveAll {
		return false
	}
	visible := s.Visible()
	keys := make([]string, 0, len(visible))
	for _, o := range visible {
		keys = append(keys, o.Key)
	}
	return s.MoveToSelected(keys...)
}

// MoveAllToAvailable empties the selection.
func (s *Store) MoveAllToAvailable() bool {
	if s == nil || !s.cfg.AllowMoveAll || len(s.selected) == 0 {
		return false
	}
	s.selected = nil
	clear(s.inSel)
	return true
}

// Reorder swaps key with its neighbour in the given direction. Moving the
// first key up or the last key down does nothing.
func (s *Store) Reorder(key string, dir Direction) bool {
	return s.Shift([]string{key}, dir)
}

// Shift moves every selected key in keys one step in dir. A key only passes
// a neighbour outside the set, so a block already at the edge stays put.
// Shifting clears the selection query.
func (s *Store) Shift(keys []string, dir Direction) bool {
	if s == nil || !s.cfg.AllowOrder {
		return false
	}
	set := s.keySet(keys)
	if len(set) == 0 {
		return false
	}
	s.selQuery = ""
	changed := false
	n := len(s.selected)
	if dir == Up {
		for i := 1; i < n; i++ {
			if !set[s.selected[i-1]] && set[s.selected[i]] {
				s.selected[i-1], s.selected[i] = s.selected[i], s.selected[i-1]
				changed = true
			}
		}
		return changed
	}
	for i := n - 2; i >= 0; i-- {
		if !set[s.selected[i+1]] && set[s.selected[i]] {
			s.selected[i], s.selected[i+1] = s.selected[i+1], s.selected[i]
			changed = true
		}
	}
	return changed
}

// CanShift reports whether Shift(keys, dir) would change the order.
func (s *Store) CanShift(keys []string, dir Direction) bool {
	if s == nil || !s.cfg.AllowOrder {
		return false
	}
	set := s.keySet(keys)
	k := len(set)
	if k == 0 {
		return false
	}
	n := len(s.selected)
	for i := 0; i < k; i++ {
		idx := i
		if dir == Down {
			idx = n - 1 - i
		}
		if !set[s.selected[idx]] {
			return true
		}
	}
	return false
}

// SetQuery sets the available-pane query. Without filtering enabled the
// query always stays empty.
func (s *Store) SetQuery(text string) bool {
	if s == nil {
		return false
	}
	if !s.cfg.Filter {
		text = ""
	}
	if text == s.query {
		return false
	}
	s.query = text
	return true
}

// SetSelectionQuery sets the selected-pane query. It only affects
// VisibleSelection, never the selection itself.
func (s *Store) SetSelectionQuery(text string) bool {
	if s == nil {
		return false
	}
	if !s.cfg.Filter {
		text = ""
	}
	if text == s.selQuery {
		return false
	}
	s.selQuery = text
	return true
}

func (s *Store) matches(i int, query string) bool {
	if !s.cfg.Filter {
		return true
	}
	return filtering.Match(s.sources[i], query, s.cfg.Match)
}

func (s *Store) keySet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		if s.inSel[k] {
			set[k] = true
		}
	}
	return set
}
