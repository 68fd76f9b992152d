package theme

import (
	"fmt"
	"sync"

	"github.com/alexisbeaulieu97/libris/internal/ports"
)

// Store owns the theme preference. It persists every change and keeps the
// root's visual class in sync with the preference and, in system mode, with
// the environment's scheme signal.
type Store struct {
	mu      sync.Mutex
	storage ports.KeyValueStore
	root    *Root
	scheme  Scheme
	mode    Mode
	onApply func(class string)
}

// NewStore reads the persisted preference (defaulting to system) and applies
// it to root immediately.
func NewStore(storage ports.KeyValueStore, root *Root, scheme Scheme) *Store {
	mode := ModeSystem
	if saved, ok := storage.Get(ports.KeyTheme); ok {
		if parsed, err := ParseMode(saved); err == nil {
			mode = parsed
		}
	}

	s := &Store{storage: storage, root: root, scheme: scheme, mode: mode}
	s.mu.Lock()
	s.applyLocked()
	s.mu.Unlock()
	return s
}

// Mode returns the current preference.
func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Applied returns the visual class currently on the root.
func (s *Store) Applied() string {
	if s.root.Has(ClassDark) {
		return ClassDark
	}
	return ClassLight
}

// Root returns the root the store applies classes to.
func (s *Store) Root() *Root {
	return s.root
}

// OnApply registers a callback run after every apply with the class that was
// applied. It replaces any previous callback.
func (s *Store) OnApply(fn func(class string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onApply = fn
}

// Set changes the preference, persists it and re-applies. The new mode is
// applied even when persisting fails.
func (s *Store) Set(mode Mode) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}

	s.mu.Lock()
	s.mode = mode
	class := s.applyLocked()
	fn := s.onApply
	s.mu.Unlock()

	if fn != nil {
		fn(class)
	}

	if err := s.storage.Set(ports.KeyTheme, string(mode)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}

// Toggle advances to the next mode.
func (s *Store) Toggle() (Mode, error) {
	next := s.Mode().Next()
	return next, s.Set(next)
}

// Watch subscribes to the scheme signal for the lifetime of the caller. In
// system mode every change re-applies; in light or dark mode changes are
// ignored. The returned teardown must be called when the caller stops
// displaying the interface.
func (s *Store) Watch() (teardown func()) {
	if s.scheme == nil {
		return func() {}
	}
	return s.scheme.Subscribe(func(bool) {
		s.mu.Lock()
		if s.mode != ModeSystem {
			s.mu.Unlock()
			return
		}
		class := s.applyLocked()
		fn := s.onApply
		s.mu.Unlock()

		if fn != nil {
			fn(class)
		}
	})
}

func (s *Store) applyLocked() string {
	class := string(s.mode)
	if s.mode == ModeSystem {
		class = ClassLight
		if s.scheme != nil && s.scheme.Dark() {
			class = ClassDark
		}
	}
	s.root.replace(class)
	return class
}
