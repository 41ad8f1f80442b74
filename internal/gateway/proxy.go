// Package gateway provides the API gateway server functionality.
// This file implements the pass-through proxy to a single downstream service.
package gateway

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/EliasMima/UserManagementMicroservice/internal/httpx"
)

// DefaultForwardTimeout bounds one proxied downstream call.
const DefaultForwardTimeout = 10 * time.Second

// Proxy forwards inbound requests verbatim to one configured downstream
// service. On success the downstream status and body pass through unchanged;
// downstream errors are translated into the gateway's error shape.
// Safe for concurrent use.
type Proxy struct {
	name    string // Human-readable service name used in error details
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewProxy creates a proxy for the downstream service at baseURL. The name
// appears in error details, e.g. "User service" yields "User service error".
func NewProxy(name, baseURL string) *Proxy {
	return &Proxy{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		timeout: DefaultForwardTimeout,
	}
}

// SetClient overrides the HTTP client used for forwarding, for tests.
func (p *Proxy) SetClient(c *http.Client) {
	p.client = c
}

// errorBody is the gateway's JSON error shape.
type errorBody struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
}

func writeError(w http.ResponseWriter, status int, detail string) {
	httpx.WriteJSON(w, status, errorBody{Error: detail, StatusCode: status})
}

// Forward sends the inbound request to the downstream path and copies the
// response back. notFoundDetail, when non-empty, replaces the generic error
// detail for downstream 404 responses; by-id routes use it to preserve the
// downstream's "not found" semantics.
//
// Error mapping:
//   - downstream 2xx: status, Content-Type and body pass through unchanged
//   - downstream 404 with notFoundDetail: 404 {"error": notFoundDetail}
//   - any other non-2xx: same status, {"error": "<name> error"}
//   - transport error or timeout: 503 {"error": "<name> unavailable"}
func (p *Proxy) Forward(w http.ResponseWriter, r *http.Request, path, notFoundDetail string) {
	ctx, cancel := context.WithTimeout(r.Context(), p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, r.Method, p.baseURL+path, r.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create request")
		return
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("failed to connect to %s: %v", strings.ToLower(p.name), err)
		writeError(w, http.StatusServiceUnavailable, p.name+" unavailable")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("%s returned status %d for %s %s",
			strings.ToLower(p.name), resp.StatusCode, r.Method, path)
		if resp.StatusCode == http.StatusNotFound && notFoundDetail != "" {
			writeError(w, http.StatusNotFound, notFoundDetail)
			return
		}
		writeError(w, resp.StatusCode, p.name+" error")
		return
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("error copying response from %s: %v", strings.ToLower(p.name), err)
	}
}
