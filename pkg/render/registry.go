package render

import (
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"
)

// ErrNoRenderer is returned by Negotiate when nothing is registered.
var ErrNoRenderer = errors.New("render: no renderers registered")

// Registry stores renderers by name. Binaries pick one from configuration
// or negotiate one from an Accept header.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds a renderer by its Name(). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// List returns the sorted renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNamesLocked()
}

// Negotiate picks the first renderer whose media type appears in accept, in
// the header's order. Wildcards and misses select fallback.
func (r *Registry) Negotiate(accept, fallback string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.renderers) == 0 {
		return nil, ErrNoRenderer
	}
	for _, part := range strings.Split(accept, ",") {
		want, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil || strings.Contains(want, "*") {
			continue
		}
		for _, name := range r.sortedNamesLocked() {
			renderer := r.renderers[name]
			have, _, err := mime.ParseMediaType(renderer.ContentType())
			if err == nil && have == want {
				return renderer, nil
			}
		}
	}
	if renderer, ok := r.renderers[fallback]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("render: renderer %q not found", fallback)
}

func (r *Registry) sortedNamesLocked() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
