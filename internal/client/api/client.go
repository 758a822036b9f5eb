// Package api is the HTTP client for the decat backend.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/asorokin/decat/internal/client/query"
	"github.com/asorokin/decat/internal/common"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
)

// TokenSource supplies the current token pair and absorbs rotated tokens
// after a refresh.
type TokenSource interface {
	AccessToken() string
	RefreshToken() string
	UpdateTokens(accessToken, refreshToken string)
}

// Client wraps the backend REST API. Authorized calls transparently refresh
// an expired access token once and retry.
type Client struct {
	http   *resty.Client
	tokens TokenSource
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &Client{http: c, tokens: tokens}
}

// Ping probes the server, retrying with exponential backoff until the server
// answers or ctx is cancelled.
func (c *Client) Ping(ctx context.Context) error {
	operation := func() error {
		resp, err := c.http.R().SetContext(ctx).Get("/api/ping")
		if err != nil {
			return err
		}
		if resp.StatusCode() != http.StatusOK {
			return fmt.Errorf("ping status %d", resp.StatusCode())
		}
		return nil
	}

	b := backoff.WithContext(backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(15*time.Second)), ctx)
	return backoff.Retry(operation, b)
}

type errorPayload struct {
	Error string `json:"error"`
}

// apiError converts a non-2xx response into a sentinel error where the
// status code identifies one, keeping the server's message for context.
func apiError(resp *resty.Response) error {
	var payload errorPayload
	_ = json.Unmarshal(resp.Body(), &payload)

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		if payload.Error == "token expired" {
			return common.ErrTokenExpired
		}
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, payload.Error)
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrorEmptyField, payload.Error)
	default:
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode(), payload.Error)
	}
}

// authorized runs fn with the current access token. When the server reports
// an expired token the pair is refreshed and fn retried once.
func (c *Client) authorized(ctx context.Context, fn func(token string) (*resty.Response, error)) (*resty.Response, error) {
	resp, err := fn(c.tokens.AccessToken())
	if err != nil {
		return nil, err
	}
	if resp.IsSuccess() {
		return resp, nil
	}

	apiErr := apiError(resp)
	if !errors.Is(apiErr, common.ErrTokenExpired) {
		return nil, apiErr
	}

	if err := c.refresh(ctx); err != nil {
		return nil, err
	}

	resp, err = fn(c.tokens.AccessToken())
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}
	return resp, nil
}

func (c *Client) refresh(ctx context.Context) error {
	var out SessionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"refresh_token": c.tokens.RefreshToken()}).
		SetResult(&out).
		Post("/api/auth/refresh")
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return apiError(resp)
	}

	c.tokens.UpdateTokens(out.AccessToken, out.RefreshToken)
	return nil
}

// RequestLoginLink asks the server to mail a login link to email.
func (c *Client) RequestLoginLink(ctx context.Context, email string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email}).
		Post("/api/auth/login-link")
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return apiError(resp)
	}
	return nil
}

// Verify exchanges a login link token for a session.
func (c *Client) Verify(ctx context.Context, token string) (*SessionResponse, error) {
	var out SessionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"token": token}).
		SetResult(&out).
		Post("/api/auth/verify")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}
	return &out, nil
}

// Logout revokes the current refresh token on the server.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"refresh_token": c.tokens.RefreshToken()}).
		Post("/api/auth/logout")
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return apiError(resp)
	}
	return nil
}

// GetUser returns the authenticated user's profile.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	var out User
	_, err := c.authorized(ctx, func(token string) (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&out).
			Get("/api/session")
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListEntries fetches one page of entries plus the total matching count.
func (c *Client) ListEntries(ctx context.Context, q *query.Query) (*EntriesPage, error) {
	var out EntriesPage
	_, err := c.authorized(ctx, func(token string) (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetQueryParamsFromValues(q.Values()).
			SetResult(&out).
			Get("/api/entries")
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEntry stores a new entry and returns it with server-assigned fields.
func (c *Client) CreateEntry(ctx context.Context, fields EntryFields) (*Entry, error) {
	var out Entry
	_, err := c.authorized(ctx, func(token string) (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetBody(fields).
			SetResult(&out).
			Post("/api/entries")
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEntry replaces the text fields of the entry with the given id.
func (c *Client) UpdateEntry(ctx context.Context, id int64, fields EntryFields) (*Entry, error) {
	var out Entry
	_, err := c.authorized(ctx, func(token string) (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetBody(fields).
			SetResult(&out).
			Put("/api/entries/" + strconv.FormatInt(id, 10))
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEntry removes the entry with the given id.
func (c *Client) DeleteEntry(ctx context.Context, id int64) error {
	_, err := c.authorized(ctx, func(token string) (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			Delete("/api/entries/" + strconv.FormatInt(id, 10))
	})
	return err
}

// Export asks the server to snapshot all entries to object storage and
// returns a time-limited download link.
func (c *Client) Export(ctx context.Context) (*ExportResult, error) {
	var out ExportResult
	_, err := c.authorized(ctx, func(token string) (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&out).
			Post("/api/export")
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
