// Package models defines the domain types shared across the client: books and
// the highlights attached to them. These mirror the backend's JSON payloads.
package models
