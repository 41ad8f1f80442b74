package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/EliasMima/UserManagementMicroservice/internal/httpx"
)

// Version identifies the user service in health and root responses.
const Version = "1.0.0"

// Handler exposes the user service over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler creates the HTTP surface for the given service.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Router builds the user service's HTTP routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", h.handleRoot)
	r.Get("/health", h.handleHealth)
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})

	return r
}

// userRequest is the body of create and update requests.
type userRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (req userRequest) validate() error {
	if req.Name == "" {
		return errors.New("name is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return errors.New("invalid email address")
	}
	return nil
}

// userID parses the {id} path parameter. A non-numeric id is a client error.
func userID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, struct {
		Service   string            `json:"service"`
		Version   string            `json:"version"`
		Status    string            `json:"status"`
		Endpoints map[string]string `json:"endpoints"`
	}{
		Service: "user-service",
		Version: Version,
		Status:  "running",
		Endpoints: map[string]string{
			"health": "/health",
			"users":  "/users",
		},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, struct {
		Service    string `json:"service"`
		Status     string `json:"status"`
		Version    string `json:"version"`
		Timestamp  string `json:"timestamp"`
		UsersCount int    `json:"users_count"`
	}{
		Service:    "user-service",
		Status:     "healthy",
		Version:    Version,
		Timestamp:  time.Now().Format(time.RFC3339Nano),
		UsersCount: h.svc.Store().Count(),
	})
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	users := h.svc.List()
	log.Printf("fetching all users - total count: %d", len(users))
	httpx.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.svc.Get(id)
	if err != nil {
		httpx.WriteDetail(w, http.StatusNotFound, fmt.Sprintf("User with ID %d not found", id))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := req.validate(); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.svc.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			httpx.WriteDetail(w, http.StatusBadRequest,
				fmt.Sprintf("User with email %s already exists", req.Email))
			return
		}
		httpx.WriteDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, u)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := req.validate(); err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.svc.Update(r.Context(), id, req.Name, req.Email)
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.WriteDetail(w, http.StatusNotFound, fmt.Sprintf("User with ID %d not found", id))
	case errors.Is(err, ErrEmailTaken):
		httpx.WriteDetail(w, http.StatusBadRequest,
			fmt.Sprintf("Email %s is already in use by another user", req.Email))
	case err != nil:
		httpx.WriteDetail(w, http.StatusInternalServerError, err.Error())
	default:
		httpx.WriteJSON(w, http.StatusOK, u)
	}
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		httpx.WriteDetail(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		httpx.WriteDetail(w, http.StatusNotFound, fmt.Sprintf("User with ID %d not found", id))
		return
	}

	httpx.WriteJSON(w, http.StatusOK, deleteResponse{
		Success: true,
		Message: "User deleted successfully",
		DeletedUser: deletedUser{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		},
	})
}

// deleteResponse confirms a deletion and carries the pre-deletion snapshot.
type deleteResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	DeletedUser deletedUser `json:"deleted_user"`
}

type deletedUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
