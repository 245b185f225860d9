package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Paths of the CMS API consumed by this application.
const (
	PathAuthLocal          = "/api/auth/local"
	PathAuthLocalRegister  = "/api/auth/local/register"
	PathAuthChangePassword = "/api/auth/change-password"
	PathPasswordReset      = "/api/password-reset"
	PathUsers              = "/api/users"
	PathUsersMe            = "/api/users/me"
	PathVerifyCode         = "/api/mailer/verify-code"
	PathMailerAuthRegister = "/api/mailer/auth-register"
	PathMailerResetPasswd  = "/api/mailer/reset-password"
	PathMailerTest         = "/api/mailer/test"
	PathCustomers          = "/api/customers"
	PathAccounts           = "/api/accounts"
	PathAccountStates      = "/api/account-states"
)

// Result is the uniform outcome of every CMS call. Non-2xx responses are
// normalized into Status/Message instead of raising; only transport or
// decode failures surface as a Go error from the client methods.
type Result struct {
	Success bool
	Status  int
	Message string
	Data    json.RawMessage
}

// Decode unmarshals the (already unwrapped) data payload into v.
func (r *Result) Decode(v interface{}) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("cms: empty data payload")
	}
	return json.Unmarshal(r.Data, v)
}

// Client wraps HTTP access to the CMS, attaching bearer tokens and
// normalizing the success/error shape.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: http.DefaultClient,
	}
}

func (c *Client) Get(ctx context.Context, path, token string) (*Result, error) {
	return c.do(ctx, http.MethodGet, path, token, nil)
}

func (c *Client) Post(ctx context.Context, path, token string, body interface{}) (*Result, error) {
	return c.do(ctx, http.MethodPost, path, token, body)
}

func (c *Client) Put(ctx context.Context, path, token string, body interface{}) (*Result, error) {
	return c.do(ctx, http.MethodPut, path, token, body)
}

func (c *Client) Delete(ctx context.Context, path, token string) (*Result, error) {
	return c.do(ctx, http.MethodDelete, path, token, nil)
}

// PostPublic hits the anonymous auth endpoints (login, register), which
// take no bearer token.
func (c *Client) PostPublic(ctx context.Context, path string, body interface{}) (*Result, error) {
	return c.request(ctx, http.MethodPost, path, "", body)
}

func (c *Client) do(ctx context.Context, method, path, token string, body interface{}) (*Result, error) {
	// No credential means no network call at all.
	if token == "" {
		return &Result{Success: false, Status: http.StatusUnauthorized, Message: "No hay sesión activa"}, nil
	}
	return c.request(ctx, method, path, token, body)
}

func (c *Client) request(ctx context.Context, method, path, token string, body interface{}) (*Result, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("cms: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("cms: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cms: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cms: read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &Result{Success: true, Status: resp.StatusCode, Data: unwrap(raw)}, nil
	}
	return normalizeError(resp.StatusCode, raw), nil
}

// unwrap pulls the payload out of the Strapi {"data": ...} envelope when
// present; bare arrays/objects (e.g. /api/users) pass through untouched.
func unwrap(raw []byte) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}
	return raw
}

func normalizeError(status int, raw []byte) *Result {
	res := &Result{Success: false, Status: status}

	var envelope struct {
		Error struct {
			Status  int    `json:"status"`
			Name    string `json:"name"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		if envelope.Error.Status != 0 {
			res.Status = envelope.Error.Status
		}
		res.Message = envelope.Error.Message
		return res
	}
	res.Message = http.StatusText(status)
	return res
}
