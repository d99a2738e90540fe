package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Browser performs authenticated requests against the api.video REST API
type Browser struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	maxRetries int
	retryDelay time.Duration
	fs         afero.Fs
	logger     zerolog.Logger
	auth       *tokenSource
}

// bodyFunc produces a fresh request body for every attempt.
type bodyFunc func() (io.Reader, string)

// New creates a new Browser authenticating with apiKey
func New(apiKey string, logger zerolog.Logger, opts ...Option) (*Browser, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	b := &Browser{
		baseURL:    o.baseURL,
		httpClient: httpClient,
		userAgent:  o.userAgent,
		maxRetries: o.maxRetries,
		retryDelay: o.retryDelay,
		fs:         o.fs,
		logger:     logger,
	}
	b.auth = newTokenSource(apiKey, b.authenticate, logger)

	return b, nil
}

// BaseURL returns the endpoint requests are sent to
func (b *Browser) BaseURL() string {
	return b.baseURL
}

// Fs returns the filesystem uploads are read from
func (b *Browser) Fs() afero.Fs {
	return b.fs
}

// Get issues a GET request
func (b *Browser) Get(ctx context.Context, path string) (*Response, error) {
	return b.do(ctx, http.MethodGet, path, nil, nil)
}

// Post issues a POST request with a JSON body
func (b *Browser) Post(ctx context.Context, path string, headers map[string]string, body any) (*Response, error) {
	payload, err := jsonBody(body)
	if err != nil {
		return nil, err
	}
	return b.do(ctx, http.MethodPost, path, headers, payload)
}

// Patch issues a PATCH request with a JSON body
func (b *Browser) Patch(ctx context.Context, path string, headers map[string]string, body any) (*Response, error) {
	payload, err := jsonBody(body)
	if err != nil {
		return nil, err
	}
	return b.do(ctx, http.MethodPatch, path, headers, payload)
}

// Delete issues a DELETE request
func (b *Browser) Delete(ctx context.Context, path string) (*Response, error) {
	return b.do(ctx, http.MethodDelete, path, nil, nil)
}

// Submit uploads source as the multipart "file" part, alongside fields.
func (b *Browser) Submit(ctx context.Context, path, source string, fields map[string]string) (*Response, error) {
	payload, contentType, err := b.multipart(source, fields)
	if err != nil {
		return nil, err
	}
	return b.do(ctx, http.MethodPost, path, nil, bytesBody(payload, contentType))
}

// IsSuccessful reports whether resp carries a 2xx status
func (b *Browser) IsSuccessful(resp *Response) bool {
	return resp.IsSuccess()
}

func (b *Browser) do(ctx context.Context, method, path string, headers map[string]string, body bodyFunc) (*Response, error) {
	resp, err := b.send(ctx, method, path, headers, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && b.auth.Invalidate() {
		b.logger.Debug().
			Str("method", method).
			Str("path", path).
			Msg("Access token rejected, authenticating again")
		return b.send(ctx, method, path, headers, body)
	}

	return resp, nil
}

// send performs the request, retrying transport errors and retryable statuses.
func (b *Browser) send(ctx context.Context, method, path string, headers map[string]string, body bodyFunc) (*Response, error) {
	var resp *Response

	operation := func() error {
		token, err := b.auth.Token(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}

		r, err := b.roundTrip(ctx, method, path, headers, body, token)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}

		resp = r
		if isRetryableStatus(r.StatusCode) {
			return fmt.Errorf("%w: %d", errRetryableStatus, r.StatusCode)
		}
		return nil
	}

	notify := func(err error, wait time.Duration) {
		b.logger.Warn().
			Err(err).
			Str("method", method).
			Str("path", path).
			Dur("wait", wait).
			Msg("Retrying api.video request")
	}

	if err := backoff.RetryNotify(operation, b.newBackOff(ctx), notify); err != nil {
		if errors.Is(err, errRetryableStatus) && resp != nil {
			return resp, nil
		}
		return nil, err
	}

	return resp, nil
}

func (b *Browser) newBackOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = b.retryDelay
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(b.maxRetries)), ctx)
}

func (b *Browser) roundTrip(ctx context.Context, method, path string, headers map[string]string, body bodyFunc, token string) (*Response, error) {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		reader, contentType = body()
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", b.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	b.logger.Debug().
		Str("method", method).
		Str("path", path).
		Msg("Making api.video request")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	b.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Int("body_length", len(data)).
		Msg("Received api.video response")

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// authenticate posts credentials to an /auth endpoint without a bearer token.
func (b *Browser) authenticate(ctx context.Context, path string, payload any) (*Response, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return nil, err
	}
	return b.roundTrip(ctx, http.MethodPost, path, nil, body, "")
}

func (b *Browser) multipart(source string, fields map[string]string) ([]byte, string, error) {
	file, err := b.fs.Open(source)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", source, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := w.WriteField(key, fields[key]); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	part, err := w.CreateFormFile("file", filepath.Base(source))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", source, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}

func jsonBody(v any) (bodyFunc, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
	}
	return bytesBody(data, "application/json"), nil
}

func bytesBody(data []byte, contentType string) bodyFunc {
	return func() (io.Reader, string) {
		return bytes.NewReader(data), contentType
	}
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
