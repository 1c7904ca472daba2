// Package session tracks the views (rendered charts, exported files) a
// run has open.
package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrDuplicateView is returned when a view name is already open.
var ErrDuplicateView = errors.New("view already open")

// ErrUnknownView is returned when closing a view that is not open.
var ErrUnknownView = errors.New("unknown view")

// View is one open view.
type View struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Registry holds open views. It is safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	nextID int
	views  map[int]View
	byName map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		views:  make(map[int]View),
		byName: make(map[string]int),
	}
}

// Open registers a view under a unique name.
func (r *Registry) Open(name, kind string) (View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; ok {
		return View{}, fmt.Errorf("%s: %w", name, ErrDuplicateView)
	}
	r.nextID++
	v := View{ID: r.nextID, Name: name, Kind: kind}
	r.views[v.ID] = v
	r.byName[name] = v.ID
	return v, nil
}

// Close removes a view.
func (r *Registry) Close(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.views[id]
	if !ok {
		return fmt.Errorf("view %d: %w", id, ErrUnknownView)
	}
	delete(r.views, id)
	delete(r.byName, v.Name)
	return nil
}

// List returns the open views ordered by id.
func (r *Registry) List() []View {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]View, 0, len(r.views))
	for _, v := range r.views {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CloseAll removes every view and returns them in open order.
func (r *Registry) CloseAll() []View {
	views := r.List()

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range views {
		delete(r.views, v.ID)
		delete(r.byName, v.Name)
	}
	return views
}
