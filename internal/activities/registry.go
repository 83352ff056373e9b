// Package activities provides Registry for storing and querying activities.
package activities

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry stores activities keyed by their unique names.
// Implementations must be thread-safe for concurrent access.
type Registry interface {
	// Put stores an activity. Returns an error if an activity
	// with the same name already exists.
	Put(act *Activity) error

	// Get retrieves an activity by name. Returns a copy and true if found,
	// or nil and false if not found.
	Get(name string) (*Activity, bool)

	// Update atomically modifies an activity. The update function is called
	// while holding an exclusive lock on the registry; an error returned by
	// the function aborts the update and is passed through. Returns
	// ErrActivityNotFound if the activity does not exist.
	Update(name string, fn func(*Activity) error) error

	// List returns copies of all activities sorted by name.
	List() []*Activity
}

// inMemoryRegistry is a thread-safe in-memory implementation of Registry.
type inMemoryRegistry struct {
	mu         sync.RWMutex
	activities map[string]*Activity
}

// NewInMemoryRegistry creates a new in-memory Registry.
func NewInMemoryRegistry() Registry {
	return &inMemoryRegistry{
		activities: make(map[string]*Activity),
	}
}

// Put stores an activity.
func (r *inMemoryRegistry) Put(act *Activity) error {
	if act == nil {
		return fmt.Errorf("activity cannot be nil")
	}
	if act.Name == "" {
		return fmt.Errorf("activity has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.activities[act.Name]; exists {
		return fmt.Errorf("activity %q already exists", act.Name)
	}

	r.activities[act.Name] = act.Clone()
	return nil
}

// Get retrieves an activity by name.
func (r *inMemoryRegistry) Get(name string) (*Activity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	act, ok := r.activities[name]
	if !ok {
		return nil, false
	}
	return act.Clone(), true
}

// Update atomically modifies an activity.
func (r *inMemoryRegistry) Update(name string, fn func(*Activity) error) error {
	if fn == nil {
		return fmt.Errorf("update function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	act, ok := r.activities[name]
	if !ok {
		return ErrActivityNotFound
	}

	return fn(act)
}

// List returns copies of all activities sorted by name.
func (r *inMemoryRegistry) List() []*Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]*Activity, 0, len(r.activities))
	for _, act := range r.activities {
		results = append(results, act.Clone())
	}

	slices.SortFunc(results, func(a, b *Activity) int {
		return strings.Compare(a.Name, b.Name)
	})

	return results
}
