package notification

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/EliasMima/UserManagementMicroservice/internal/httpx"
	"github.com/EliasMima/UserManagementMicroservice/internal/notify"
)

// Version identifies the notification service in health and root responses.
const Version = "1.0.0"

// Handler exposes the notification service over HTTP.
type Handler struct {
	store  *Store
	sender *Sender
}

// NewHandler creates the HTTP surface over the given history and sender.
func NewHandler(store *Store, sender *Sender) *Handler {
	return &Handler{store: store, sender: sender}
}

// Router builds the notification service's HTTP routes. The literal /stats
// route is registered inside the /notifications subtree so it is not
// shadowed by the {id} route.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", h.handleRoot)
	r.Get("/health", h.handleHealth)
	r.Post("/notify", h.handleNotify)
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Delete("/", h.handleClear)
		r.Get("/stats", h.handleStats)
		r.Get("/{id}", h.handleGet)
		r.Delete("/{id}", h.handleDelete)
	})

	return r
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, struct {
		Service   string            `json:"service"`
		Version   string            `json:"version"`
		Status    string            `json:"status"`
		Endpoints map[string]string `json:"endpoints"`
	}{
		Service: "notification-service",
		Version: Version,
		Status:  "running",
		Endpoints: map[string]string{
			"health":        "/health",
			"notify":        "/notify (POST)",
			"notifications": "/notifications",
		},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	sent, failed := h.store.Counts()
	httpx.WriteJSON(w, http.StatusOK, struct {
		Service             string `json:"service"`
		Status              string `json:"status"`
		Version             string `json:"version"`
		Timestamp           string `json:"timestamp"`
		NotificationsSent   int    `json:"notifications_sent"`
		NotificationsFailed int    `json:"notifications_failed"`
	}{
		Service:             "notification-service",
		Status:              "healthy",
		Version:             Version,
		Timestamp:           time.Now().Format(time.RFC3339Nano),
		NotificationsSent:   sent + failed,
		NotificationsFailed: failed,
	})
}

// handleNotify simulates sending one notification and records it. The
// response is always 200: a failed delivery is reported in the record's
// status field, never as an HTTP error.
func (h *Handler) handleNotify(w http.ResponseWriter, r *http.Request) {
	var req notify.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "bad json")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "invalid email address")
		return
	}
	if req.Priority == "" {
		req.Priority = notify.PriorityNormal
	}

	status, deliveryMs := h.sender.Deliver()
	rec := h.store.Append(notify.Notification{
		Email:          req.Email,
		Subject:        req.Subject,
		Message:        req.Message,
		Priority:       req.Priority,
		Status:         status,
		Timestamp:      time.Now().Format(time.RFC3339Nano),
		DeliveryTimeMs: deliveryMs,
	})

	if status == notify.StatusSent {
		log.Printf("notification %d sent to %s in %dms (priority %s)",
			rec.ID, rec.Email, rec.DeliveryTimeMs, rec.Priority)
	} else {
		log.Printf("notification %d to %s failed", rec.ID, rec.Email)
	}

	httpx.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httpx.WriteDetail(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	recs := h.store.List(limit, r.URL.Query().Get("status"), r.URL.Query().Get("priority"))
	log.Printf("returning %d notifications", len(recs))
	httpx.WriteJSON(w, http.StatusOK, recs)
}

func (h *Handler) handleStats(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.store.Stats())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	rec, err := h.store.Get(id)
	if err != nil {
		httpx.WriteDetail(w, http.StatusNotFound,
			fmt.Sprintf("Notification with ID %d not found", id))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleClear(w http.ResponseWriter, _ *http.Request) {
	count := h.store.Clear()
	log.Printf("cleared %d notifications", count)
	httpx.WriteJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{
		Success: true,
		Message: fmt.Sprintf("Notification history cleared. Deleted %d notifications.", count),
	})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	rec, err := h.store.Delete(id)
	if err != nil {
		httpx.WriteDetail(w, http.StatusNotFound,
			fmt.Sprintf("Notification with ID %d not found", id))
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		Success             bool                `json:"success"`
		Message             string              `json:"message"`
		DeletedNotification notify.Notification `json:"deleted_notification"`
	}{
		Success:             true,
		Message:             "Notification deleted",
		DeletedNotification: rec,
	})
}
