// Package catalog reads and writes option sets as YAML files.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jask/dualpick/core/element"
	"github.com/jask/dualpick/internal/database/repository"
)

// Set is one option-set file.
type Set struct {
	Name     string   `yaml:"name"`
	Title    string   `yaml:"title,omitempty"`
	Options  []Option `yaml:"options"`
	Selected []string `yaml:"selected,omitempty"`
}

type Option struct {
	Key    string   `yaml:"key"`
	Label  string   `yaml:"label"`
	Filter []string `yaml:"filter,omitempty"`
}

var ErrMissingName = errors.New("option set has no name")

// Parse decodes a set. A missing label falls back to the key.
func Parse(data []byte) (Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Set{}, fmt.Errorf("decode option set: %w", err)
	}
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return Set{}, ErrMissingName
	}
	for i := range s.Options {
		if s.Options[i].Label == "" {
			s.Options[i].Label = s.Options[i].Key
		}
	}
	return s, nil
}

func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, err
	}
	s, err := Parse(data)
	if err != nil {
		return Set{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes the set through a temporary file and a rename.
func Save(path string, s Set) error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrMissingName
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ToElement builds the plain list element of a set with its selection applied.
func ToElement(s Set) *element.Element {
	el := &element.Element{ID: s.Name, Name: s.Name}
	for i, o := range s.Options {
		el.Options = append(el.Options, element.Option{
			Value:      o.Key,
			Label:      o.Label,
			Index:      i,
			FilterText: strings.Join(o.Filter, " "),
		})
	}
	el.Apply(s.Selected)
	return el
}

// FromRepository converts a stored set and its selection.
func FromRepository(rs repository.OptionSet, selected []string) Set {
	s := Set{Name: rs.Name, Title: rs.Title, Selected: append([]string(nil), selected...)}
	for _, o := range rs.Options {
		s.Options = append(s.Options, Option{Key: o.Key, Label: o.Label, Filter: o.FilterWords})
	}
	return s
}

// ToRepository converts a set for storage. The selection is returned
// separately.
func ToRepository(s Set) (repository.OptionSet, []string) {
	rs := repository.OptionSet{Name: s.Name, Title: s.Title}
	for i, o := range s.Options {
		rs.Options = append(rs.Options, repository.Option{
			Key:         o.Key,
			Label:       o.Label,
			Position:    i,
			FilterWords: o.Filter,
		})
	}
	return rs, append([]string(nil), s.Selected...)
}
