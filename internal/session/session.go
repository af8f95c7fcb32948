// Package session persists the client-held state the storefront keeps
// between visits: cart contents, favorite product ids and the signed-in
// profile. State loads once at startup, saves on every change, and
// subscribers get a snapshot per change so concurrent views stay in sync.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/mgvega/tienda-backend/internal/cart"
)

// Profile is the public slice of the authenticated customer the client keeps.
type Profile struct {
	CustomerID uint   `json:"id_cliente"`
	Name       string `json:"nombre"`
	Email      string `json:"email"`
}

// Snapshot is the full session state as persisted.
type Snapshot struct {
	ID        string       `json:"id_sesion"`
	Cart      []cart.Entry `json:"carrito"`
	Favorites []uint       `json:"favoritos"`
	User      *Profile     `json:"usuario,omitempty"`
}

type Store struct {
	path string

	mu   sync.Mutex
	snap Snapshot
	subs map[int]chan Snapshot
	next int
}

// Open loads the snapshot at path, starting fresh when the file does not
// exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, subs: make(map[int]chan Snapshot)}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.snap = Snapshot{ID: uuid.NewString()}
	case err != nil:
		return nil, fmt.Errorf("load session %s: %w", path, err)
	default:
		if err := json.Unmarshal(data, &s.snap); err != nil {
			return nil, fmt.Errorf("decode session %s: %w", path, err)
		}
		if s.snap.ID == "" {
			s.snap.ID = uuid.NewString()
		}
	}
	return s, nil
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.clone()
}

// Cart rebuilds the cart aggregate from the stored entries.
func (s *Store) Cart() *cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.FromEntries(s.snap.Cart)
}

// SetCart stores the cart's entries and persists.
func (s *Store) SetCart(c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Cart = c.Entries()
	return s.saveLocked()
}

// ToggleFavorite adds the product id to the favorites, or removes it when
// already present, and reports whether it is now a favorite.
func (s *Store) ToggleFavorite(productID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, id := range s.snap.Favorites {
		if id == productID {
			s.snap.Favorites = append(s.snap.Favorites[:i], s.snap.Favorites[i+1:]...)
			return false, s.saveLocked()
		}
	}
	s.snap.Favorites = append(s.snap.Favorites, productID)
	return true, s.saveLocked()
}

func (s *Store) SetUser(p *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.User = p
	return s.saveLocked()
}

// Subscribe returns a channel receiving a snapshot after every change, and a
// cancel function that must be called when done. Slow subscribers miss
// intermediate snapshots rather than blocking writers.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
}

func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	snap := s.snap.clone()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// drop the stale one, leave the latest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
	return nil
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Cart = append([]cart.Entry(nil), s.Cart...)
	out.Favorites = append([]uint(nil), s.Favorites...)
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}
