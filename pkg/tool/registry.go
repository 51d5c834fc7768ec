package tool

import (
	"fmt"
	"sort"
	"sync"

	"m2demo/pkg/types"
)

// Registry maps tool names to instances. The set of tools is closed once
// the run starts; a lookup miss is a typed error, never a silent skip.
type Registry struct {
	mu        sync.RWMutex
	instances map[string]Tool
	order     []string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{instances: make(map[string]Tool)}
}

// Register adds a tool instance. Re-registering a name replaces the
// previous instance without changing its position.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.instances[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.instances[t.Name()] = t
}

// Get returns a tool instance by name.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.instances[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return t, nil
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Definitions renders the registry as provider tool definitions, in
// registration order.
func (r *Registry) Definitions() []types.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]types.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, ToDefinition(r.instances[name]))
	}
	return defs
}

// SortedNames returns the registered tool names sorted alphabetically,
// for stable error listings.
func (r *Registry) SortedNames() []string {
	names := r.Names()
	sort.Strings(names)
	return names
}

// NotFoundError indicates a requested tool is missing from the registry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tool not found: %s", e.Name)
}
