// Package binding connects a picker instance to the place its selection
// lives: read when the picker attaches, written when the user submits.
package binding

import (
	"context"
	"errors"
)

// Binding is the read/write selection pair of one picker instance.
type Binding interface {
	ReadSelection(ctx context.Context) ([]string, error)
	WriteSelection(ctx context.Context, keys []string) error
}

// ErrReadOnly is returned by Func bindings without a writer.
var ErrReadOnly = errors.New("selection binding is read-only")

// Func adapts two closures to a Binding. A nil Read yields an empty
// selection and a nil Write returns ErrReadOnly.
type Func struct {
	Read  func(ctx context.Context) ([]string, error)
	Write func(ctx context.Context, keys []string) error
}

func (f Func) ReadSelection(ctx context.Context) ([]string, error) {
	if f.Read == nil {
		return nil, nil
	}
	return f.Read(ctx)
}

func (f Func) WriteSelection(ctx context.Context, keys []string) error {
	if f.Write == nil {
		return ErrReadOnly
	}
	return f.Write(ctx, keys)
}

// Memory keeps the selection in process, for hosts without a store such as
// tests.
type Memory struct {
	Keys []string
}

func (m *Memory) ReadSelection(context.Context) ([]string, error) {
	return append([]string(nil), m.Keys...), nil
}

func (m *Memory) WriteSelection(_ context.Context, keys []string) error {
	m.Keys = append([]string(nil), keys...)
	return nil
}
