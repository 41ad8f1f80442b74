// Package gateway provides the API gateway server functionality.
// This file implements concurrent health aggregation over downstream targets.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Health status values reported per target and for the gateway itself.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// DefaultProbeTimeout bounds a single health probe when the target does not
// carry its own timeout.
const DefaultProbeTimeout = 5 * time.Second

// Target is one downstream service probed during health aggregation.
// Targets are built from configuration at startup and never change.
type Target struct {
	Name    string        // Unique name within the probe set
	BaseURL string        // Base address, e.g. "http://user-service:8001"
	Timeout time.Duration // Per-probe timeout; DefaultProbeTimeout if zero
}

// Probe is the outcome of one health check against one target.
// Exactly one of ResponseTimeMs or Error is set, depending on Status.
type Probe struct {
	Status         string   `json:"status"`
	ResponseTimeMs *float64 `json:"response_time_ms,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// TargetProbe pairs a target name with its probe outcome.
type TargetProbe struct {
	Name  string
	Probe Probe
}

// ProbeSet holds per-target probe outcomes in the order the targets were
// configured. It marshals as a JSON object whose keys preserve that order.
type ProbeSet []TargetProbe

// MarshalJSON renders the set as {"<name>": {...}, ...} in target order.
func (ps ProbeSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tp := range ps {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(tp.Name)
		if err != nil {
			return nil, err
		}
		probe, err := json.Marshal(tp.Probe)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(probe)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Report is the aggregate health document returned by the gateway's /health
// endpoint. Status reflects the gateway's own liveness and is always
// "healthy"; downstream failures surface only inside Downstream.
type Report struct {
	Service    string   `json:"service"`
	Status     string   `json:"status"`
	Version    string   `json:"version"`
	Downstream ProbeSet `json:"downstream_services"`
}

// Aggregator performs concurrent health checks against a fixed set of
// downstream targets and assembles a single report that never fails.
// Safe for concurrent use.
type Aggregator struct {
	service string
	version string
	targets []Target
	client  *http.Client
}

// NewAggregator creates an aggregator reporting as the given service and
// version over the provided targets.
func NewAggregator(service, version string, targets []Target) *Aggregator {
	return &Aggregator{
		service: service,
		version: version,
		targets: targets,
		client:  &http.Client{},
	}
}

// SetClient overrides the HTTP client used for probes.
// This is useful for testing with httptest transports.
func (a *Aggregator) SetClient(c *http.Client) {
	a.client = c
}

// Check probes every target concurrently and returns the aggregate report.
// Probes are dispatched without waiting for one another and complete
// independently; one target timing out or erroring cannot delay or cancel a
// sibling. Check never returns an error and never panics: every failure mode
// is folded into the per-target outcome.
func (a *Aggregator) Check(ctx context.Context) Report {
	probes := make(ProbeSet, len(a.targets))

	var wg sync.WaitGroup
	for i, target := range a.targets {
		wg.Add(1)
		go func(i int, t Target) {
			defer wg.Done()
			probes[i] = TargetProbe{Name: t.Name, Probe: a.probe(ctx, t)}
		}(i, target)
	}
	wg.Wait()

	return Report{
		Service:    a.service,
		Status:     StatusHealthy,
		Version:    a.version,
		Downstream: probes,
	}
}

// probe performs one GET against the target's /health endpoint, bounded by
// the target's timeout. Expiry of the timeout is treated exactly like any
// other transport error.
func (a *Aggregator) probe(ctx context.Context, t Target) Probe {
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := strings.TrimRight(t.BaseURL, "/") + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Probe{Status: StatusUnhealthy, Error: err.Error()}
	}

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return Probe{Status: StatusUnhealthy, Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Probe{
			Status: StatusUnhealthy,
			Error:  fmt.Sprintf("unhealthy status %d", resp.StatusCode),
		}
	}

	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	return Probe{Status: StatusHealthy, ResponseTimeMs: &elapsed}
}
