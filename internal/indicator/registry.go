package indicator

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps indicator names to instances. Names are case-insensitive.
// A Registry is read-only once built and safe to share between goroutines.
type Registry struct {
	byName map[string]Indicator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Indicator, 64)}
}

// Register adds ind; a second indicator with the same name is rejected.
func (r *Registry) Register(ind Indicator) error {
	key := strings.ToLower(ind.Name())
	if _, exists := r.byName[key]; exists {
		return fmt.Errorf("indicator %q already registered", key)
	}
	r.byName[key] = ind
	return nil
}

// Lookup returns the indicator called name.
func (r *Registry) Lookup(name string) (Indicator, error) {
	ind, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIndicator, name)
	}
	return ind, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered indicators.
func (r *Registry) Len() int { return len(r.byName) }

// Builtins returns a registry holding every built-in indicator.
func Builtins() *Registry {
	r := NewRegistry()
	for _, group := range [][]Descriptor{oscillators(), volatilities(), generics()} {
		for _, d := range group {
			mustRegister(r, MustMake(d))
		}
	}
	mustRegister(r, NotImplemented("knn_classifier", "k-nearest-neighbour price classifier"))
	return r
}

func mustRegister(r *Registry, ind Indicator) {
	if err := r.Register(ind); err != nil {
		panic(err)
	}
}
