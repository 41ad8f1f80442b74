// Package gateway provides the API gateway server functionality.
// This file wires the aggregator and proxy into the gateway's HTTP routes.
package gateway

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/EliasMima/UserManagementMicroservice/internal/httpx"
)

// Version identifies the gateway in health and root responses.
const Version = "1.0.0"

const userNotFoundDetail = "User not found"

// Server holds the gateway's dependencies: the health aggregator and the
// proxy for the user-owning service.
type Server struct {
	aggregator *Aggregator
	users      *Proxy
}

// NewServer creates a gateway server probing the given targets and proxying
// /api/users traffic to userServiceURL.
func NewServer(userServiceURL string, targets []Target) *Server {
	return &Server{
		aggregator: NewAggregator("api-gateway", Version, targets),
		users:      NewProxy("User service", userServiceURL),
	}
}

// Aggregator exposes the server's health aggregator, for test wiring.
func (s *Server) Aggregator() *Aggregator {
	return s.aggregator
}

// UserProxy exposes the server's user-service proxy, for test wiring.
func (s *Server) UserProxy() *Proxy {
	return s.users
}

// Router builds the gateway's HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			s.users.Forward(w, req, "/users", "")
		})
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			s.users.Forward(w, req, "/users", "")
		})
		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			s.users.Forward(w, req, "/users/"+chi.URLParam(req, "id"), userNotFoundDetail)
		})
		r.Put("/{id}", func(w http.ResponseWriter, req *http.Request) {
			s.users.Forward(w, req, "/users/"+chi.URLParam(req, "id"), userNotFoundDetail)
		})
		r.Delete("/{id}", func(w http.ResponseWriter, req *http.Request) {
			s.users.Forward(w, req, "/users/"+chi.URLParam(req, "id"), userNotFoundDetail)
		})
	})

	return r
}

// handleRoot serves basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, struct {
		Service   string            `json:"service"`
		Version   string            `json:"version"`
		Endpoints map[string]string `json:"endpoints"`
	}{
		Service: "api-gateway",
		Version: Version,
		Endpoints: map[string]string{
			"health": "/health",
			"users":  "/api/users",
		},
	})
}

// handleHealth returns the aggregate health report. The endpoint always
// answers 200: downstream unhealthiness is surfaced inside the report, never
// by failing the call.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	log.Printf("health check requested")
	report := s.aggregator.Check(r.Context())
	httpx.WriteJSON(w, http.StatusOK, report)
}
