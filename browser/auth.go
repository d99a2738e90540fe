package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// expiryDelta renews tokens slightly before the server expires them.
const expiryDelta = 10 * time.Second

type authFunc func(ctx context.Context, path string, payload any) (*Response, error)

type tokenResponse struct {
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type token struct {
	access  string
	refresh string
	expiry  time.Time
}

// tokenSource exchanges the API key for bearer tokens and caches them.
type tokenSource struct {
	mu      sync.Mutex
	apiKey  string
	current *token
	fetch   authFunc
	now     func() time.Time
	logger  zerolog.Logger
}

func newTokenSource(apiKey string, fetch authFunc, logger zerolog.Logger) *tokenSource {
	return &tokenSource{
		apiKey: apiKey,
		fetch:  fetch,
		now:    time.Now,
		logger: logger,
	}
}

// Token returns a valid access token, refreshing or re-authenticating as needed
func (s *tokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.now().Before(s.current.expiry) {
		return s.current.access, nil
	}

	if s.current != nil && s.current.refresh != "" {
		t, err := s.request(ctx, "/auth/refresh", map[string]string{"refreshToken": s.current.refresh})
		if err == nil {
			s.current = t
			return t.access, nil
		}
		s.logger.Debug().Err(err).Msg("Token refresh failed, authenticating with API key")
	}

	t, err := s.request(ctx, "/auth/api-key", map[string]string{"apiKey": s.apiKey})
	if err != nil {
		s.current = nil
		return "", err
	}

	s.current = t
	return t.access, nil
}

// Invalidate drops the cached token and reports whether one was cached
func (s *tokenSource) Invalidate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	had := s.current != nil
	s.current = nil
	return had
}

func (s *tokenSource) request(ctx context.Context, path string, payload any) (*token, error) {
	resp, err := s.fetch(ctx, path, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, &AuthError{StatusCode: resp.StatusCode, Body: resp.String()}
	}

	var body tokenResponse
	if err := resp.Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if body.AccessToken == "" {
		return nil, &AuthError{StatusCode: resp.StatusCode, Body: "empty access token"}
	}

	s.logger.Debug().
		Str("endpoint", path).
		Int("expires_in", body.ExpiresIn).
		Msg("Obtained api.video access token")

	return &token{
		access:  body.AccessToken,
		refresh: body.RefreshToken,
		expiry:  s.now().Add(tokenLifetime(body.ExpiresIn)),
	}, nil
}

// tokenLifetime is how long a token is reused. Short-lived tokens renew
// halfway through their lifetime instead of expiryDelta early.
func tokenLifetime(expiresIn int) time.Duration {
	lifetime := time.Duration(expiresIn) * time.Second
	return lifetime - min(expiryDelta, lifetime/2)
}
