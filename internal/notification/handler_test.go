package notification

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EliasMima/UserManagementMicroservice/internal/notify"
)

func newTestHandler(failureRate float64) (*Handler, http.Handler) {
	sender := NewSender()
	sender.SetFailureRate(failureRate)
	h := NewHandler(NewStore(), sender)
	return h, h.Router()
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// TestNotifySuccess verifies a send records and returns the delivery record.
func TestNotifySuccess(t *testing.T) {
	_, router := newTestHandler(0)

	rec := do(t, router, http.MethodPost, "/notify",
		`{"email":"ada@example.com","subject":"Welcome!","message":"hello","priority":"high"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got notify.Notification
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, notify.PriorityHigh, got.Priority)
	assert.Equal(t, notify.StatusSent, got.Status)
	assert.GreaterOrEqual(t, got.DeliveryTimeMs, minDeliveryMs)
	assert.LessOrEqual(t, got.DeliveryTimeMs, maxDeliveryMs)
	assert.NotEmpty(t, got.Timestamp)
}

// TestNotifyFailureIsStill200 verifies a failed delivery is reported in the
// body, never as an HTTP error.
func TestNotifyFailureIsStill200(t *testing.T) {
	_, router := newTestHandler(1)

	rec := do(t, router, http.MethodPost, "/notify",
		`{"email":"ada@example.com","subject":"Welcome!","message":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got notify.Notification
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, notify.StatusFailed, got.Status)
}

// TestNotifyDefaultsPriority verifies an omitted priority becomes "normal".
func TestNotifyDefaultsPriority(t *testing.T) {
	_, router := newTestHandler(0)

	rec := do(t, router, http.MethodPost, "/notify",
		`{"email":"ada@example.com","subject":"s","message":"m"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got notify.Notification
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, notify.PriorityNormal, got.Priority)
}

// TestNotifyValidation verifies malformed requests are rejected.
func TestNotifyValidation(t *testing.T) {
	_, router := newTestHandler(0)

	rec := do(t, router, http.MethodPost, "/notify", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/notify", `{"email":"nope","subject":"s","message":"m"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestNotificationQueries verifies listing, filters, by-id lookup and the
// stats route (which must not be shadowed by the {id} route).
func TestNotificationQueries(t *testing.T) {
	_, router := newTestHandler(0)

	for i := 0; i < 3; i++ {
		rec := do(t, router, http.MethodPost, "/notify",
			fmt.Sprintf(`{"email":"u%d@example.com","subject":"s","message":"m","priority":"high"}`, i))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// List with limit.
	rec := do(t, router, http.MethodGet, "/notifications?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []notify.Notification
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].ID)
	assert.Equal(t, 3, list[1].ID)

	// Filter with no matches.
	rec = do(t, router, http.MethodGet, "/notifications?priority=low", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Empty(t, list)

	// Invalid limit.
	rec = do(t, router, http.MethodGet, "/notifications?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// By id.
	rec = do(t, router, http.MethodGet, "/notifications/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var one notify.Notification
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&one))
	assert.Equal(t, "u1@example.com", one.Email)

	rec = do(t, router, http.MethodGet, "/notifications/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Stats is a literal route, not an id.
	rec = do(t, router, http.MethodGet, "/notifications/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats Stats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 100.0, stats.SuccessRate)
	assert.Equal(t, 3, stats.PriorityDistribution[notify.PriorityHigh])
}

// TestNotificationDeletes verifies single deletion and full clearing.
func TestNotificationDeletes(t *testing.T) {
	_, router := newTestHandler(0)

	for i := 0; i < 2; i++ {
		rec := do(t, router, http.MethodPost, "/notify",
			fmt.Sprintf(`{"email":"u%d@example.com","subject":"s","message":"m"}`, i))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(t, router, http.MethodDelete, "/notifications/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted struct {
		Success             bool                `json:"success"`
		DeletedNotification notify.Notification `json:"deleted_notification"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&deleted))
	assert.True(t, deleted.Success)
	assert.Equal(t, 1, deleted.DeletedNotification.ID)

	rec = do(t, router, http.MethodDelete, "/notifications/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodDelete, "/notifications", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cleared struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cleared))
	assert.True(t, cleared.Success)
	assert.Contains(t, cleared.Message, "Deleted 1 notifications")

	rec = do(t, router, http.MethodGet, "/notifications", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []notify.Notification
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Empty(t, list)
}

// TestNotificationHealth verifies the health body tallies sent and failed
// deliveries.
func TestNotificationHealth(t *testing.T) {
	h, router := newTestHandler(0)

	rec := do(t, router, http.MethodPost, "/notify",
		`{"email":"a@example.com","subject":"s","message":"m"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	h.sender.SetFailureRate(1)
	rec = do(t, router, http.MethodPost, "/notify",
		`{"email":"b@example.com","subject":"s","message":"m"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Service             string `json:"service"`
		Status              string `json:"status"`
		NotificationsSent   int    `json:"notifications_sent"`
		NotificationsFailed int    `json:"notifications_failed"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "notification-service", body.Service)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, 2, body.NotificationsSent)
	assert.Equal(t, 1, body.NotificationsFailed)
}
