// Package client is a typed HTTP client for the Campus Events API. It
// mirrors the server's route surface and error envelope so callers deal in
// models and *APIError values instead of raw responses.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/campus-events-api/internal/models"
)

// TokenSource supplies the bearer credential attached to authenticated
// requests. forceRefresh asks the source to discard any cached credential
// and mint a fresh one; the client sets it after a 401 before retrying.
type TokenSource interface {
	Token(ctx context.Context, forceRefresh bool) (string, error)
}

// StaticToken is a TokenSource returning a fixed credential.
type StaticToken string

func (t StaticToken) Token(ctx context.Context, forceRefresh bool) (string, error) {
	return string(t), nil
}

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to a Campus Events API server.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// New creates a client for the server at baseURL. tokens may be nil for a
// client that only calls public routes.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

// NewWithHTTPClient creates a client using the given http.Client, for
// callers that need custom transports or timeouts.
func NewWithHTTPClient(baseURL string, tokens TokenSource, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
	}
}

// SyncAccount reconciles the caller's account and returns the stored user
// and profile.
func (c *Client) SyncAccount(ctx context.Context) (*models.User, *models.Profile, error) {
	var out struct {
		User    *models.User    `json:"user"`
		Profile *models.Profile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/sync", nil, true, &out); err != nil {
		return nil, nil, err
	}
	return out.User, out.Profile, nil
}

// Profile fetches the caller's profile, creating it if absent.
func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var out struct {
		Profile *models.Profile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/profile/me", nil, true, &out); err != nil {
		return nil, err
	}
	return out.Profile, nil
}

// UpdateProfile applies a partial profile update and returns the result.
func (c *Client) UpdateProfile(ctx context.Context, update *models.ProfileUpdate) (*models.Profile, error) {
	var out struct {
		Profile *models.Profile `json:"profile"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/profile/me", update, true, &out); err != nil {
		return nil, err
	}
	return out.Profile, nil
}

// Events lists published events. No credential is required.
func (c *Client) Events(ctx context.Context) ([]*models.Event, error) {
	var out struct {
		Events []*models.Event `json:"events"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, false, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

// CreateEvent submits an event for moderation.
func (c *Client) CreateEvent(ctx context.Context, input *models.EventInput) (*models.Event, error) {
	var out struct {
		Event *models.Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/events", input, true, &out); err != nil {
		return nil, err
	}
	return out.Event, nil
}

// HackFinderPosts lists published hackfinder posts. No credential is
// required.
func (c *Client) HackFinderPosts(ctx context.Context) ([]*models.HackFinderPost, error) {
	var out struct {
		Posts []*models.HackFinderPost `json:"posts"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/hackfinder", nil, false, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

// CreateHackFinderPost submits a hackfinder post for moderation.
func (c *Client) CreateHackFinderPost(ctx context.Context, input *models.HackFinderPostInput) (*models.HackFinderPost, error) {
	var out struct {
		Post *models.HackFinderPost `json:"post"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/hackfinder", input, true, &out); err != nil {
		return nil, err
	}
	return out.Post, nil
}

// Queues holds both pending moderation queues.
type Queues struct {
	Events          []*models.Event          `json:"events"`
	HackfinderPosts []*models.HackFinderPost `json:"hackfinderPosts"`
}

// AdminQueues fetches the pending moderation queues. Admin only.
func (c *Client) AdminQueues(ctx context.Context) (*Queues, error) {
	var out Queues
	if err := c.do(ctx, http.MethodGet, "/api/admin/queues", nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveEvent publishes a pending event. Admin only.
func (c *Client) ApproveEvent(ctx context.Context, eventID string) (*models.Event, error) {
	return c.adminEvent(ctx, http.MethodPost, "/api/admin/events/"+eventID+"/approve")
}

// RejectEvent rejects a pending event. Admin only.
func (c *Client) RejectEvent(ctx context.Context, eventID string) (*models.Event, error) {
	return c.adminEvent(ctx, http.MethodPost, "/api/admin/events/"+eventID+"/reject")
}

// DeleteEvent removes an event in any state. Admin only.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) (*models.Event, error) {
	return c.adminEvent(ctx, http.MethodDelete, "/api/admin/events/"+eventID)
}

// ApproveHackFinderPost publishes a pending post. Admin only.
func (c *Client) ApproveHackFinderPost(ctx context.Context, postID string) (*models.HackFinderPost, error) {
	return c.adminPost(ctx, http.MethodPost, "/api/admin/hackfinder/"+postID+"/approve")
}

// RejectHackFinderPost rejects a pending post. Admin only.
func (c *Client) RejectHackFinderPost(ctx context.Context, postID string) (*models.HackFinderPost, error) {
	return c.adminPost(ctx, http.MethodPost, "/api/admin/hackfinder/"+postID+"/reject")
}

// DeleteHackFinderPost removes a post in any state. Admin only.
func (c *Client) DeleteHackFinderPost(ctx context.Context, postID string) (*models.HackFinderPost, error) {
	return c.adminPost(ctx, http.MethodDelete, "/api/admin/hackfinder/"+postID)
}

func (c *Client) adminEvent(ctx context.Context, method, path string) (*models.Event, error) {
	var out struct {
		Event *models.Event `json:"event"`
	}
	if err := c.do(ctx, method, path, nil, true, &out); err != nil {
		return nil, err
	}
	return out.Event, nil
}

func (c *Client) adminPost(ctx context.Context, method, path string) (*models.HackFinderPost, error) {
	var out struct {
		Post *models.HackFinderPost `json:"post"`
	}
	if err := c.do(ctx, method, path, nil, true, &out); err != nil {
		return nil, err
	}
	return out.Post, nil
}

// do performs one request, decoding the response envelope into out. An
// authenticated request that comes back 401 is retried exactly once with a
// force-refreshed credential; a second 401 is returned to the caller.
func (c *Client) do(ctx context.Context, method, path string, body any, authed bool, out any) error {
	err := c.once(ctx, method, path, body, authed, false, out)
	if err == nil || !authed {
		return err
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		return c.once(ctx, method, path, body, authed, true, out)
	}
	return err
}

func (c *Client) once(ctx context.Context, method, path string, body any, authed, forceRefresh bool, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		if c.tokens == nil {
			return fmt.Errorf("no token source configured for authenticated request")
		}
		token, err := c.tokens.Token(ctx, forceRefresh)
		if err != nil {
			return fmt.Errorf("failed to obtain token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: "Request failed"}
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
	}
	return apiErr
}
