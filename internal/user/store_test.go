package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStoreInsert verifies id assignment, timestamps, and email uniqueness.
func TestStoreInsert(t *testing.T) {
	s := NewStore()

	ada, err := s.Insert("Ada", "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, ada.ID)
	assert.Equal(t, "Ada", ada.Name)
	assert.Equal(t, "ada@example.com", ada.Email)
	assert.NotEmpty(t, ada.CreatedAt)
	assert.Equal(t, ada.CreatedAt, ada.UpdatedAt)

	// Duplicate email is rejected and must not consume an id.
	_, err = s.Insert("Imposter", "ada@example.com")
	assert.ErrorIs(t, err, ErrEmailTaken)

	grace, err := s.Insert("Grace", "grace@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, grace.ID, "rejected insert consumed an id")
}

// TestStoreEmailCaseSensitive verifies uniqueness uses exact case-sensitive
// comparison.
func TestStoreEmailCaseSensitive(t *testing.T) {
	s := NewStore()

	_, err := s.Insert("Ada", "ada@example.com")
	require.NoError(t, err)

	_, err = s.Insert("Ada Again", "ADA@example.com")
	assert.NoError(t, err, "differently-cased email should not conflict")
}

// TestStoreGet verifies lookup by id.
func TestStoreGet(t *testing.T) {
	s := NewStore()
	ada, err := s.Insert("Ada", "ada@example.com")
	require.NoError(t, err)

	got, err := s.Get(ada.ID)
	require.NoError(t, err)
	assert.Equal(t, ada, got)

	_, err = s.Get(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestStoreList verifies listing returns all records ordered by id.
func TestStoreList(t *testing.T) {
	s := NewStore()
	assert.Empty(t, s.List())

	for _, u := range []struct{ name, email string }{
		{"Ada", "ada@example.com"},
		{"Grace", "grace@example.com"},
		{"Edsger", "edsger@example.com"},
	} {
		_, err := s.Insert(u.name, u.email)
		require.NoError(t, err)
	}

	users := s.List()
	require.Len(t, users, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{users[0].ID, users[1].ID, users[2].ID})
	assert.Equal(t, 3, s.Count())
}

// TestStoreUpdate verifies existence and uniqueness constraints on update,
// including the self-email case.
func TestStoreUpdate(t *testing.T) {
	s := NewStore()
	ada, err := s.Insert("Ada", "ada@example.com")
	require.NoError(t, err)
	_, err = s.Insert("Grace", "grace@example.com")
	require.NoError(t, err)

	// Updating to its own unchanged email is not a conflict.
	updated, err := s.Update(ada.ID, "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, ada.CreatedAt, updated.CreatedAt)

	// Another user's email is a conflict.
	_, err = s.Update(ada.ID, "Ada", "grace@example.com")
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Missing id.
	_, err = s.Update(99, "Nobody", "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestStoreDelete verifies deletion returns the pre-deletion snapshot and
// that freed ids are never reused.
func TestStoreDelete(t *testing.T) {
	s := NewStore()
	ada, err := s.Insert("Ada", "ada@example.com")
	require.NoError(t, err)

	snapshot, err := s.Delete(ada.ID)
	require.NoError(t, err)
	assert.Equal(t, ada, snapshot)

	_, err = s.Get(ada.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Delete(ada.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The deleted id is not reused.
	next, err := s.Insert("Grace", "grace@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, next.ID)
}
