package theme

import (
	"sort"
	"sync"
)

// Visual classes. Exactly one of them is present on the root after any
// apply.
const (
	ClassLight = "light"
	ClassDark  = "dark"
)

// Root is the class list of the interface root. Other components may add
// their own classes; the theme store only touches the two visual ones.
type Root struct {
	mu      sync.RWMutex
	classes map[string]struct{}
}

// NewRoot returns an empty root.
func NewRoot() *Root {
	return &Root{classes: make(map[string]struct{})}
}

// Add adds classes to the root.
func (r *Root) Add(classes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range classes {
		r.classes[c] = struct{}{}
	}
}

// Remove removes classes from the root. Absent classes are ignored.
func (r *Root) Remove(classes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range classes {
		delete(r.classes, c)
	}
}

// Has reports whether class is present.
func (r *Root) Has(class string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.classes[class]
	return ok
}

// Classes returns the present classes sorted.
func (r *Root) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.classes))
	for c := range r.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// replace swaps the visual class under one lock so readers never observe
// both or neither.
func (r *Root) replace(class string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.classes, ClassLight)
	delete(r.classes, ClassDark)
	r.classes[class] = struct{}{}
}
