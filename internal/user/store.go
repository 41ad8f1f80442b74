package user

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/exp/slices"
)

// ErrNotFound is returned when no user exists for the requested id.
var ErrNotFound = errors.New("user not found")

// ErrEmailTaken is returned when a mutation would violate email uniqueness.
var ErrEmailTaken = errors.New("email already in use")

// User is one user record. Timestamps are RFC 3339 strings; CreatedAt and
// UpdatedAt are equal until the first update.
type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Store is the in-memory user store: a mapping from id to record plus an
// auto-incrementing id counter. All constraint checks run inside the store's
// critical section, so each mutation is atomic with its validation.
// Thread-safe for concurrent access.
type Store struct {
	mu     sync.RWMutex
	users  map[int]User
	nextID int
}

// NewStore creates an empty store whose first assigned id is 1.
func NewStore() *Store {
	return &Store{
		users:  make(map[int]User),
		nextID: 1,
	}
}

// Insert creates a new record, enforcing global email uniqueness with exact
// case-sensitive comparison. The id counter advances only on success, so a
// rejected insert never consumes an id.
func (s *Store) Insert(name, email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return User{}, ErrEmailTaken
		}
	}

	now := time.Now().Format(time.RFC3339Nano)
	u := User{
		ID:        s.nextID,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[u.ID] = u
	s.nextID++
	return u, nil
}

// Get retrieves a record by id.
func (s *Store) Get(id int) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.users[id]
	if !exists {
		return User{}, ErrNotFound
	}
	return u, nil
}

// List returns all records ordered by id.
func (s *Store) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b User) int { return a.ID - b.ID })
	return out
}

// Update replaces the name and email of an existing record. Email
// uniqueness is enforced against every other record, so a record may keep
// its own email. UpdatedAt is refreshed; ids never change.
func (s *Store) Update(id int, name, email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return User{}, ErrNotFound
	}
	for uid, other := range s.users {
		if uid != id && other.Email == email {
			return User{}, ErrEmailTaken
		}
	}

	u.Name = name
	u.Email = email
	u.UpdatedAt = time.Now().Format(time.RFC3339Nano)
	s.users[id] = u
	return u, nil
}

// Delete removes a record and returns its pre-deletion snapshot.
// The freed id is never reused.
func (s *Store) Delete(id int) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return User{}, ErrNotFound
	}
	delete(s.users, id)
	return u, nil
}

// Count returns the number of stored records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
