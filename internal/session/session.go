// Package session holds the client's authenticated identity: a bearer token
// and the username it was issued for, mirrored into durable storage.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/alexisbeaulieu97/libris/internal/ports"
)

// ErrEmptyToken is returned by Login when no token is supplied.
var ErrEmptyToken = errors.New("session token is empty")

// Snapshot is a point-in-time copy of the session. An empty Token means the
// user is logged out.
type Snapshot struct {
	Token    string
	Username string
}

// Authenticated reports whether the snapshot carries a token.
func (s Snapshot) Authenticated() bool {
	return s.Token != ""
}

// Store is the single authoritative holder of the session. It is created
// once at startup and passed explicitly to every consumer.
type Store struct {
	mu       sync.RWMutex
	storage  ports.KeyValueStore
	token    string
	username string
}

// Load initialises a Store from whatever values durable storage holds. No
// server round-trip is made; a stale token is only discovered when a later
// call fails.
func Load(storage ports.KeyValueStore) *Store {
	s := &Store{storage: storage}

	token, _ := storage.Get(ports.KeyToken)
	if token == "" {
		return s
	}
	s.token = token
	s.username, _ = storage.Get(ports.KeyUsername)
	return s
}

// Login persists token and username together and makes them the active
// session.
func (s *Store) Login(token, username string) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values := map[string]string{ports.KeyToken: token, ports.KeyUsername: username}
	if batch, ok := s.storage.(ports.BatchSetter); ok {
		if err := batch.SetMany(values); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
	} else {
		if err := s.storage.Set(ports.KeyUsername, username); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
		if err := s.storage.Set(ports.KeyToken, token); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
	}

	s.token = token
	s.username = username
	return nil
}

// Logout clears token and username from memory and from storage. Memory is
// cleared even when the storage write fails.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.username = ""
	if err := s.storage.Delete(ports.KeyToken, ports.KeyUsername); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Token returns the bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Username returns the display username, empty when logged out.
func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Authenticated reports whether a token is held.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Snapshot returns token and username read under the same lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Token: s.token, Username: s.username}
}
