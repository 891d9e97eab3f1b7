package stats

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNoSuchTable indicates a table name that is not open.
	ErrNoSuchTable = errors.New("stats: no such table")

	// ErrTableOpen indicates Begin on a name already open.
	ErrTableOpen = errors.New("stats: table already open")
)

// Registry holds the open tables of one run.
type Registry struct {
	tables map[string]*Table
	order  []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

// Begin opens a new table called name.
func (r *Registry) Begin(name string, opts ...TableOption) (*Table, error) {
	if _, ok := r.tables[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrTableOpen, name)
	}
	t := newTable(name, opts)
	r.tables[name] = t
	r.order = append(r.order, name)

	return t, nil
}

// Table returns the open table called name.
func (r *Registry) Table(name string) (*Table, error) {
	t, ok := r.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchTable, name)
	}

	return t, nil
}

// Names returns the open tables' names in Begin order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// End renders the table called name to w, if w is non-nil, and closes it.
func (r *Registry) End(name string, w io.Writer) error {
	t, err := r.Table(name)
	if err != nil {
		return err
	}
	delete(r.tables, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}
	if w == nil {
		return nil
	}

	return t.Render(w)
}
