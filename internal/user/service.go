package user

import (
	"context"
	"fmt"
	"log"

	"github.com/EliasMima/UserManagementMicroservice/internal/notify"
)

// Notifier sends one notification and reports the sink's delivery record.
// *notify.Client satisfies this; tests substitute fakes.
type Notifier interface {
	Send(ctx context.Context, req notify.Request) (*notify.Notification, error)
}

// Service implements the mutate-then-notify flow over the user store.
// Each mutation commits locally first; the notification that follows is
// best-effort and can never affect the committed result.
type Service struct {
	store    *Store
	notifier Notifier
}

// NewService creates a service over the given store. notifier may be nil, in
// which case Phase 2 is skipped entirely.
func NewService(store *Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// Store returns the underlying record store.
func (s *Service) Store() *Store {
	return s.store
}

// Get retrieves one record by id.
func (s *Service) Get(id int) (User, error) {
	return s.store.Get(id)
}

// List returns all records ordered by id.
func (s *Service) List() []User {
	return s.store.List()
}

// Create inserts a new record and sends a welcome notification.
// A duplicate email fails the call before any notification is attempted.
func (s *Service) Create(ctx context.Context, name, email string) (User, error) {
	u, err := s.store.Insert(name, email)
	if err != nil {
		return User{}, err
	}
	log.Printf("user %d created: %s (%s)", u.ID, u.Name, u.Email)

	s.sendNotification(ctx, u.Email,
		fmt.Sprintf("Welcome %s!", u.Name),
		fmt.Sprintf("Your account has been created successfully. User ID: %d", u.ID))
	return u, nil
}

// Update modifies an existing record and sends an update confirmation.
// Missing ids and email conflicts fail the call before any notification is
// attempted.
func (s *Service) Update(ctx context.Context, id int, name, email string) (User, error) {
	u, err := s.store.Update(id, name, email)
	if err != nil {
		return User{}, err
	}
	log.Printf("user %d updated", u.ID)

	s.sendNotification(ctx, u.Email,
		"Profile Updated",
		fmt.Sprintf("Hi %s, your profile has been updated successfully.", u.Name))
	return u, nil
}

// Delete removes a record, returning its pre-deletion snapshot, and sends a
// goodbye notification.
func (s *Service) Delete(ctx context.Context, id int) (User, error) {
	u, err := s.store.Delete(id)
	if err != nil {
		return User{}, err
	}
	log.Printf("user %d deleted (%s)", u.ID, u.Name)

	s.sendNotification(ctx, u.Email,
		"Account Deleted",
		fmt.Sprintf("Goodbye %s, your account has been deleted. We're sorry to see you go!", u.Name))
	return u, nil
}

// sendNotification is Phase 2 of every mutation: a single bounded call to
// the notification sink whose outcome is recorded in the log and nowhere
// else. Transport errors and sink-reported failures are both swallowed here.
func (s *Service) sendNotification(ctx context.Context, email, subject, message string) {
	if s.notifier == nil {
		return
	}

	rec, err := s.notifier.Send(ctx, notify.Request{
		Email:   email,
		Subject: subject,
		Message: message,
	})
	if err != nil {
		log.Printf("failed to send notification to %s: %v", email, err)
		return
	}
	if rec.Status != notify.StatusSent {
		log.Printf("notification %d to %s reported status %q", rec.ID, email, rec.Status)
		return
	}
	log.Printf("notification %d sent to %s in %dms", rec.ID, email, rec.DeliveryTimeMs)
}
