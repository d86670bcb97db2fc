// Package syncjob drives the backend's library synchronization job from the
// client side.
//
// The backend runs the sync itself; this package initiates it via
// POST /check-and-sync and then polls GET /sync-status until a terminal state,
// with a bounded attempt count and a fixed interval between sequential ticks.
// An [Orchestrator] owns its state machine exclusively: callers observe it
// through State and the one-shot Reload signal, and stop it with Close.
//
// Start is guarded by a single-flight flag set synchronously before any
// asynchronous work, so a host that invokes setup twice in quick succession
// issues exactly one initiation request.
package syncjob
