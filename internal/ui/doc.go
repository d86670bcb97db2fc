// Package ui implements the interactive sync view using bubbletea's Elm architecture.
//
// The view starts the sync orchestrator when it mounts, renders its state on a
// short refresh tick (spinner + message while checking/downloading, styled
// error or completion lines when terminal), and refetches the book list when
// the orchestrator's reload signal fires. Quitting tears the orchestrator
// down, cancelling any in-flight poll.
//
// Keyboard bindings: r retries a failed sync, q/ctrl+c quits. Contextual help
// renders via charmbracelet/bubbles/help.
package ui
