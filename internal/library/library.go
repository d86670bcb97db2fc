// Package library wraps the backend's book and highlight endpoints. These are
// plain fetch-and-decode calls; all resilience lives in [remote.Caller].
package library

import (
	"context"
	"fmt"
	"time"

	"readmark/internal/models"
	"readmark/internal/remote"
)

const defaultTimeout = 10 * time.Second

// Client reads the highlights library from the backend.
type Client struct {
	caller  *remote.Caller
	timeout time.Duration
}

// NewClient wraps caller with the default request timeout.
func NewClient(caller *remote.Caller) *Client {
	return &Client{caller: caller, timeout: defaultTimeout}
}

// ListBooks fetches all books in the library.
func (c *Client) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := c.caller.GetJSON(ctx, "/books", c.timeout, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// ListHighlights fetches the highlights for one book.
func (c *Client) ListHighlights(ctx context.Context, bookID int) ([]models.Highlight, error) {
	var highlights []models.Highlight
	path := fmt.Sprintf("/books/%d/highlights", bookID)
	if err := c.caller.GetJSON(ctx, path, c.timeout, &highlights); err != nil {
		return nil, err
	}
	return highlights, nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the POST /login payload.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
}

// Login authenticates and returns the session token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var payload LoginResponse
	body := loginRequest{Username: username, Password: password}
	if err := c.caller.PostJSON(ctx, "/login", body, c.timeout, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
