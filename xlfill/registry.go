package xlfill

import (
	"fmt"
	"sort"
	"sync"
)

// HandlerRegistry stores placeholder handlers keyed by token suffix.
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	suffixes []string
}

// NewHandlerRegistry creates an empty registry.
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]HandlerFunc)}
}

// Register adds a handler for a suffix.
func (r *HandlerRegistry) Register(suffix string, handler HandlerFunc) error {
	if suffix == "" {
		return NewError(KindValidation, "handler suffix is required", nil)
	}
	if handler == nil {
		return NewError(KindValidation, "handler func is required", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[suffix]; exists {
		return NewError(KindValidation, fmt.Sprintf("handler %q already registered", suffix), nil)
	}
	r.handlers[suffix] = handler
	r.suffixes = append(r.suffixes, suffix)
	r.sortLocked()
	return nil
}

// Replace sets a handler for a suffix, overwriting any existing one.
func (r *HandlerRegistry) Replace(suffix string, handler HandlerFunc) error {
	if suffix == "" {
		return NewError(KindValidation, "handler suffix is required", nil)
	}
	if handler == nil {
		return NewError(KindValidation, "handler func is required", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[suffix]; !exists {
		r.suffixes = append(r.suffixes, suffix)
		r.sortLocked()
	}
	r.handlers[suffix] = handler
	return nil
}

// Deregister removes a handler.
func (r *HandlerRegistry) Deregister(suffix string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[suffix]; !exists {
		return
	}
	delete(r.handlers, suffix)
	for i, s := range r.suffixes {
		if s == suffix {
			r.suffixes = append(r.suffixes[:i], r.suffixes[i+1:]...)
			break
		}
	}
}

// Resolve finds a handler by suffix.
func (r *HandlerRegistry) Resolve(suffix string) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[suffix]
	return handler, ok
}

// Suffixes returns registered suffixes, longest first, so that a token like
// "asset.photo.image" matches ".photo.image" before ".image".
func (r *HandlerRegistry) Suffixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.suffixes))
	copy(out, r.suffixes)
	return out
}

func (r *HandlerRegistry) sortLocked() {
	sort.Slice(r.suffixes, func(i, j int) bool {
		if len(r.suffixes[i]) != len(r.suffixes[j]) {
			return len(r.suffixes[i]) > len(r.suffixes[j])
		}
		return r.suffixes[i] < r.suffixes[j]
	})
}
