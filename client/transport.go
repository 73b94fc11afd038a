package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// publicPathPrefixes are endpoints that never need a bearer token and must
// not trigger a refresh cycle. Refreshing on a failed login would loop.
var publicPathPrefixes = []string{"/auth/", "/health"}

// refreshResult is what a finished refresh hands to every waiting request.
type refreshResult struct {
	accessToken string
	err         error
}

// refreshState deduplicates concurrent refresh attempts. The first request
// that hits a 401 performs the refresh; every other request that fails in the
// meantime parks on a channel and reuses the outcome.
type refreshState struct {
	mu       sync.Mutex
	inflight bool
	waiters  []chan refreshResult
}

// authTransport is an http.RoundTripper that attaches the stored access token
// and transparently rotates the pair on 401 responses, retrying the original
// request exactly once with the fresh token.
type authTransport struct {
	base       http.RoundTripper
	store      TokenStore
	refreshURL string
	state      refreshState

	// onAuthFailure runs once per failed refresh, after the store is
	// cleared. Callers hook session-expired handling here.
	onAuthFailure func()
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if isPublicPath(req.URL.Path) {
		return t.base.RoundTrip(req)
	}

	accessToken, refreshToken := t.store.Tokens()

	resp, err := t.roundTripWithToken(req, accessToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || refreshToken == "" {
		return resp, nil
	}
	if req.Body != nil && req.GetBody == nil {
		// Streaming bodies cannot be replayed.
		return resp, nil
	}

	// The access token was rejected. Rotate the pair (deduplicated across
	// concurrent requests) and replay the original request once.
	newAccessToken, refreshErr := t.refreshTokens(req.Context(), refreshToken)
	if refreshErr != nil {
		// Session is over; hand back the original 401 untouched.
		return resp, nil
	}

	drainAndClose(resp.Body)

	return t.roundTripWithToken(req, newAccessToken)
}

// roundTripWithToken sends a clone of req carrying the given bearer token.
// The clone keeps the original replayable via GetBody.
func (t *authTransport) roundTripWithToken(req *http.Request, accessToken string) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, errors.Wrap(err, "failed to rewind request body")
		}
		cloned.Body = body
	}
	if accessToken != "" {
		cloned.Header.Set("Authorization", "Bearer "+accessToken)
	}

	return t.base.RoundTrip(cloned)
}

// refreshTokens rotates the stored pair, collapsing concurrent calls into a
// single refresh request.
func (t *authTransport) refreshTokens(ctx context.Context, refreshToken string) (string, error) {
	t.state.mu.Lock()
	if t.state.inflight {
		waiter := make(chan refreshResult, 1)
		t.state.waiters = append(t.state.waiters, waiter)
		t.state.mu.Unlock()

		select {
		case result := <-waiter:
			return result.accessToken, result.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	t.state.inflight = true
	t.state.mu.Unlock()

	accessToken, err := t.doRefresh(ctx, refreshToken)
	if err != nil {
		// One failure ends the session for everyone.
		_ = t.store.Clear()
		if t.onAuthFailure != nil {
			t.onAuthFailure()
		}
	}

	result := refreshResult{accessToken: accessToken, err: err}

	t.state.mu.Lock()
	t.state.inflight = false
	waiters := t.state.waiters
	t.state.waiters = nil
	t.state.mu.Unlock()

	for _, waiter := range waiters {
		waiter <- result
	}

	return accessToken, err
}

// doRefresh performs the actual refresh call and persists the rotated pair.
func (t *authTransport) doRefresh(ctx context.Context, refreshToken string) (string, error) {
	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode refresh request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "failed to build refresh request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return "", errors.Wrap(err, "refresh request failed")
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("refresh rejected with status %d", resp.StatusCode)
	}

	var envelope struct {
		Data struct {
			Tokens tokenPair `json:"tokens"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", errors.Wrap(err, "failed to decode refresh response")
	}

	tokens := envelope.Data.Tokens
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return "", errors.New("refresh response missing tokens")
	}

	if err := t.store.Save(tokens.AccessToken, tokens.RefreshToken); err != nil {
		return "", errors.Wrap(err, "failed to persist rotated tokens")
	}

	return tokens.AccessToken, nil
}

func isPublicPath(path string) bool {
	for _, prefix := range publicPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
