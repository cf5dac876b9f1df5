package repository

import (
	"errors"
	"time"
)

// ErrSetNotFound is returned when a named option set does not exist.
var ErrSetNotFound = errors.New("option set not found")

// OptionSet represents an option_sets row with its options in position order.
type OptionSet struct {
	Name      string
	Title     string
	CreatedAt time.Time
	Options   []Option
}

// Option represents an options row.
type Option struct {
	Key         string
	Label       string
	Position    int
	FilterWords []string
}

// SetSummary is a listing row.
type SetSummary struct {
	Name      string
	Title     string
	Options   int
	Selected  int
	CreatedAt time.Time
}
