// Package gateway implements the API gateway: the single entry point that
// routes client requests to the backend services and aggregates their health.
//
// # Overview
//
// The gateway owns two responsibilities:
//
//	┌──────────────────────────────────────┐
//	│               Gateway                │
//	├──────────────────────────────────────┤
//	│  Aggregator - concurrent /health     │
//	│               probes of all targets  │
//	│  Proxy      - pass-through of        │
//	│               /api/users requests    │
//	└──────────────────────────────────────┘
//
// # Health Aggregation
//
// Aggregator probes every configured downstream target concurrently, each
// probe bounded by the target's own timeout. A failing, slow, or unreachable
// target never delays or cancels the probes of its siblings, and never fails
// the aggregate call: the outcome of each probe is folded into the report as
// either
//
//	{"status": "healthy", "response_time_ms": 12.4}
//
// or
//
//	{"status": "unhealthy", "error": "..."}
//
// The report's own status is always "healthy": it reflects the gateway's
// liveness, not the downstream results. Total aggregation time is bounded by
// the slowest single probe rather than the sum of all probes.
//
// # Proxying
//
// Proxy forwards a request verbatim to one downstream service and copies the
// response back on success. Downstream errors map as follows:
//
//   - non-2xx status: same status, body {"error": "<service> error", ...}
//   - 404 on by-id routes: preserved with a "not found" detail
//   - connection failure or timeout: 503 {"error": "<service> unavailable", ...}
//
// The proxy has no concurrency or aggregation logic of its own.
//
// # Concurrency Model
//
// Aggregator and Proxy are immutable after construction and safe for
// concurrent use by any number of in-flight requests. Probes run one
// goroutine per target and write disjoint slice slots, so no locking is
// needed during fan-in.
package gateway
