package notification

import (
	"errors"
	"math"
	"sync"

	"github.com/EliasMima/UserManagementMicroservice/internal/notify"
)

// ErrNotFound is returned when no notification exists for the requested id.
var ErrNotFound = errors.New("notification not found")

// DefaultListLimit caps history listings when the caller gives no limit.
const DefaultListLimit = 100

// Store keeps the notification history in memory: an append-only list plus
// an auto-incrementing id counter. Thread-safe for concurrent access.
type Store struct {
	mu      sync.RWMutex
	history []notify.Notification
	nextID  int
}

// NewStore creates an empty history whose first assigned id is 1.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Append records one delivery, assigning it the next id, and returns the
// stored record.
func (s *Store) Append(rec notify.Notification) notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	s.nextID++
	s.history = append(s.history, rec)
	return rec
}

// Get retrieves one record by id.
func (s *Store) Get(id int) (notify.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.history {
		if rec.ID == id {
			return rec, nil
		}
	}
	return notify.Notification{}, ErrNotFound
}

// List returns the most recent limit records matching the status and
// priority filters, oldest first. Empty filters match everything; a
// non-positive limit falls back to DefaultListLimit.
func (s *Store) List(limit int, status, priority string) []notify.Notification {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]notify.Notification, 0, len(s.history))
	for _, rec := range s.history {
		if status != "" && rec.Status != status {
			continue
		}
		if priority != "" && rec.Priority != priority {
			continue
		}
		filtered = append(filtered, rec)
	}

	if len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}
	return filtered
}

// Delete removes one record by id and returns it.
func (s *Store) Delete(id int) (notify.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.history {
		if rec.ID == id {
			s.history = append(s.history[:i], s.history[i+1:]...)
			return rec, nil
		}
	}
	return notify.Notification{}, ErrNotFound
}

// Clear removes every record and returns how many were deleted.
// Cleared ids are never reused.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.history)
	s.history = nil
	return count
}

// Counts returns how many records were sent and how many failed.
func (s *Store) Counts() (sent, failed int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.history {
		if rec.Status == notify.StatusFailed {
			failed++
		} else {
			sent++
		}
	}
	return sent, failed
}

// Stats summarizes the delivery history.
type Stats struct {
	Total                int            `json:"total_notifications"`
	Successful           int            `json:"successful"`
	Failed               int            `json:"failed"`
	SuccessRate          float64        `json:"success_rate"`
	AverageDeliveryMs    float64        `json:"average_delivery_time_ms"`
	PriorityDistribution map[string]int `json:"priority_distribution,omitempty"`
}

// Stats computes success rate, average simulated delivery time, and the
// distribution of priorities across the whole history. Rates and averages
// are rounded to two decimals.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.history)
	if total == 0 {
		return Stats{}
	}

	var successful, deliverySum int
	dist := map[string]int{
		notify.PriorityLow:    0,
		notify.PriorityNormal: 0,
		notify.PriorityHigh:   0,
	}
	for _, rec := range s.history {
		if rec.Status == notify.StatusSent {
			successful++
		}
		deliverySum += rec.DeliveryTimeMs
		if _, known := dist[rec.Priority]; known {
			dist[rec.Priority]++
		}
	}

	return Stats{
		Total:                total,
		Successful:           successful,
		Failed:               total - successful,
		SuccessRate:          round2(float64(successful) / float64(total) * 100),
		AverageDeliveryMs:    round2(float64(deliverySum) / float64(total)),
		PriorityDistribution: dist,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
