package notification

import (
	"math/rand"
	"sync"
	"time"

	"github.com/EliasMima/UserManagementMicroservice/internal/notify"
)

// Simulated delivery characteristics. A real deployment would talk to an
// email or SMS provider here; the simulation keeps the failure-isolation
// behavior of dependent services testable.
const (
	minDeliveryMs = 50
	maxDeliveryMs = 300

	defaultFailureRate = 0.05
)

// Sender simulates notification delivery: each call reports a delivery
// latency between 50 and 300 milliseconds and fails at a configurable rate.
// Thread-safe for concurrent access.
type Sender struct {
	mu          sync.Mutex
	rng         *rand.Rand
	failureRate float64
}

// NewSender creates a sender with the default 5% failure rate.
func NewSender() *Sender {
	return &Sender{
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		failureRate: defaultFailureRate,
	}
}

// SetFailureRate overrides the failure probability. Tests use 0 or 1 to
// force deterministic outcomes.
func (s *Sender) SetFailureRate(rate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failureRate = rate
}

// Deliver simulates sending one notification, returning the delivery status
// and the simulated latency in milliseconds. The call itself never fails;
// a failed delivery is a status, not an error.
func (s *Sender) Deliver() (status string, deliveryMs int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deliveryMs = minDeliveryMs + s.rng.Intn(maxDeliveryMs-minDeliveryMs+1)
	if s.rng.Float64() < s.failureRate {
		return notify.StatusFailed, deliveryMs
	}
	return notify.StatusSent, deliveryMs
}
