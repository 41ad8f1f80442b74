// Package user implements the user-owning service: an in-memory record
// store, the mutate-then-notify service layer on top of it, and the HTTP
// handlers that expose both.
//
// # Mutate-then-Notify
//
// Every mutation (create, update, delete) follows the same two-phase shape:
//
// Phase 1, the local mutation. Uniqueness and existence constraints are
// checked and the store mutated inside a single critical section. A
// constraint violation (duplicate email, missing id) ends the call with a
// domain error and Phase 2 never runs.
//
// Phase 2, the best-effort notification. A notification describing the
// mutation is sent to the notification service. Its outcome (delivered,
// reported failed, timed out, or unreachable) is only logged. No Phase 2
// error can surface to the caller, change the returned record, or undo the
// Phase 1 mutation.
//
// The notify call runs synchronously before the HTTP response is written, so
// a slow sink inflates request latency up to the sink client's timeout, but
// its result can never alter the response computed from Phase 1.
//
// # Concurrency Model
//
// The store guards its map and id counter with a single sync.RWMutex, so
// mutations to any record are serialized. Identifiers come from a
// process-wide counter starting at 1, incremented only on successful insert
// and never reused after deletion. No state survives a restart.
package user
