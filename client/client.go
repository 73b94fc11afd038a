package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// tokenPair mirrors the token pair the API returns.
type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Account is the API's outward view of a user.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterRequest is the payload for Register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginRequest is the payload for Login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// apiError carries the API's business error code alongside the HTTP status.
type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// envelope matches the server's unified response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is
// wrapped with the token-refreshing transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithOnAuthFailure installs a hook that runs once whenever a token refresh
// fails and the session ends. The login-redirect equivalent for CLI and
// service consumers.
func WithOnAuthFailure(fn func()) Option {
	return func(c *Client) {
		c.onAuthFailure = fn
	}
}

// Client is a session-aware consumer of the personal-finance API.
type Client struct {
	baseURL       string
	store         TokenStore
	httpClient    *http.Client
	onAuthFailure func()
}

// New creates a Client against the given base URL. A nil store defaults to
// an in-memory one, scoping the session to this process.
func New(baseURL string, store TokenStore, opts ...Option) *Client {
	if store == nil {
		store = NewMemoryStore()
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}

	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.httpClient.Transport = &authTransport{
		base:          base,
		store:         store,
		refreshURL:    c.baseURL + "/auth/refresh",
		onAuthFailure: c.onAuthFailure,
	}

	return c
}

// Register creates an account and stores the issued token pair.
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*Account, error) {
	return c.authenticate(ctx, "/auth/register", req)
}

// Login signs in and stores the issued token pair.
func (c *Client) Login(ctx context.Context, req *LoginRequest) (*Account, error) {
	return c.authenticate(ctx, "/auth/login", req)
}

func (c *Client) authenticate(ctx context.Context, path string, payload any) (*Account, error) {
	var result struct {
		User   *Account   `json:"user"`
		Tokens *tokenPair `json:"tokens"`
	}
	if err := c.do(ctx, http.MethodPost, path, payload, &result); err != nil {
		return nil, err
	}
	if result.Tokens == nil {
		return nil, errors.New("response missing tokens")
	}

	if err := c.store.Save(result.Tokens.AccessToken, result.Tokens.RefreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to persist tokens")
	}

	return result.User, nil
}

// Logout notifies the API and drops the stored session.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}

	return c.store.Clear()
}

// Me fetches the authenticated account.
func (c *Client) Me(ctx context.Context) (*Account, error) {
	var result struct {
		User *Account `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &result); err != nil {
		return nil, err
	}
	if result.User == nil {
		return nil, errors.New("response missing user")
	}

	return result.User, nil
}

// do sends one API request and decodes the unified response envelope into out.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s failed", method, path)
	}
	defer drainAndClose(resp.Body)

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.Wrapf(err, "failed to decode %s %s response", method, path)
	}

	if !env.Success {
		apiErr := &apiError{Status: resp.StatusCode, Message: env.Message}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
		}

		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrap(err, "failed to decode response data")
		}
	}

	return nil
}
