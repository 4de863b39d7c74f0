// Package api implements the typed client for the remote gallery service.
// Every operation either returns the decoded payload or a generic
// *RequestError; no finer-grained error taxonomy exists at this layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okulov/photocards/internal/types"
)

// RequestError is the single failure kind for remote operations: either a
// transport error (Status == 0) or a non-2xx response.
type RequestError struct {
	Op     string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: server returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client talks to the gallery service.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the service at baseURL, authorizing every
// request with token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// do performs one request and decodes a JSON response into out (when out is
// non-nil). Request bodies are JSON-encoded from in (when in is non-nil).
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var bodyReader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &RequestError{Op: op, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Authorization", c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain the body so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return &RequestError{Op: op, Status: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// GetUserInfo fetches the current user's profile.
func (c *Client) GetUserInfo(ctx context.Context) (*types.User, error) {
	var user types.User
	if err := c.do(ctx, "getUserInfo", http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetCardList fetches the card collection in server order.
func (c *Client) GetCardList(ctx context.Context) ([]types.Card, error) {
	var cards []types.Card
	if err := c.do(ctx, "getCardList", http.MethodGet, "/cards", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// SetUserInfo updates the profile name and about text.
func (c *Client) SetUserInfo(ctx context.Context, name, about string) (*types.User, error) {
	in := map[string]string{"name": name, "about": about}
	var user types.User
	if err := c.do(ctx, "setUserInfo", http.MethodPatch, "/users/me", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUserAvatar updates the profile avatar URL.
func (c *Client) SetUserAvatar(ctx context.Context, avatar string) (*types.User, error) {
	in := map[string]string{"avatar": avatar}
	var user types.User
	if err := c.do(ctx, "setUserAvatar", http.MethodPatch, "/users/me/avatar", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AddNewCard creates a card and returns it as stored by the server.
func (c *Client) AddNewCard(ctx context.Context, name, link string) (*types.Card, error) {
	in := map[string]string{"name": name, "link": link}
	var card types.Card
	if err := c.do(ctx, "addNewCard", http.MethodPost, "/cards", in, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// DeleteCard removes a card. No payload is required on success.
func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	return c.do(ctx, "deleteCard", http.MethodDelete, "/cards/"+cardID, nil, nil)
}

// ChangeLikeStatus toggles the current user's like on a card. liked is the
// pre-toggle state: true issues an unlike, false issues a like. The returned
// card carries the authoritative like set.
func (c *Client) ChangeLikeStatus(ctx context.Context, cardID string, liked bool) (*types.Card, error) {
	method := http.MethodPut
	if liked {
		method = http.MethodDelete
	}
	var card types.Card
	if err := c.do(ctx, "changeLikeStatus", method, "/cards/likes/"+cardID, nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}
