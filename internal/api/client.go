// ABOUTME: HTTP client for the CollabForm REST API
// ABOUTME: Adds bearer auth and maps failures to CLI-friendly errors

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the current bearer token, or "" when anonymous.
type TokenSource func() string

// Client is the API client for the CollabForm backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
}

// New creates a new API client. tokenSource may be nil for clients
// that only hit unauthenticated endpoints.
func New(baseURL string, tokenSource TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		token: tokenSource,
	}
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login calls POST /api/auth/login.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var auth AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Register calls POST /api/auth/register.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var auth AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// MyForms calls GET /api/forms/my-forms.
func (c *Client) MyForms(ctx context.Context) ([]Form, error) {
	var forms []Form
	if err := c.do(ctx, http.MethodGet, "/api/forms/my-forms", nil, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

// SharedForms calls GET /api/forms/shared-with-me.
func (c *Client) SharedForms(ctx context.Context) ([]Form, error) {
	var forms []Form
	if err := c.do(ctx, http.MethodGet, "/api/forms/shared-with-me", nil, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

// GetForm calls GET /api/forms/{id} and returns the form with fields.
func (c *Client) GetForm(ctx context.Context, id int64) (*Form, error) {
	var form Form
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/forms/%d", id), nil, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

// CreateForm calls POST /api/forms.
func (c *Client) CreateForm(ctx context.Context, req *FormSaveRequest) (*Form, error) {
	var form Form
	if err := c.do(ctx, http.MethodPost, "/api/forms", req, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

// UpdateForm calls PUT /api/forms/{id}.
func (c *Client) UpdateForm(ctx context.Context, id int64, req *FormSaveRequest) (*Form, error) {
	var form Form
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/forms/%d", id), req, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

// DeleteForm calls DELETE /api/forms/{id}.
func (c *Client) DeleteForm(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/forms/%d", id), nil, nil)
}

// ShareForm calls POST /api/forms/{id}/share granting access by email.
func (c *Client) ShareForm(ctx context.Context, id int64, recipientEmail string) (*ShareReceipt, error) {
	var receipt ShareReceipt
	req := ShareRequest{RecipientEmail: recipientEmail}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/forms/%d/share", id), req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// SubmitResponses calls POST /api/forms/{id}/submit.
func (c *Client) SubmitResponses(ctx context.Context, id int64, responses map[string]any) error {
	req := SubmitRequest{Responses: responses}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/forms/%d/submit", id), req, nil)
}

// do issues a JSON request and decodes the response into out when
// out is non-nil. 2xx statuses are treated as success.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.handleErrorResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("invalid response from backend: %w", err)
		}
	}

	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse surfaces the backend's error message verbatim
// when the envelope carries one.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Message == "" {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("%s", errResp.Message)
}
