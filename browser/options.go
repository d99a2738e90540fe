package browser

import (
	"net/http"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const (
	// ProductionBaseURL is the api.video production endpoint.
	ProductionBaseURL = "https://ws.api.video"
	// SandboxBaseURL is the api.video sandbox endpoint.
	SandboxBaseURL = "https://sandbox.api.video"

	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second
	// DefaultRetryDelay is the first backoff interval between retries.
	DefaultRetryDelay = 500 * time.Millisecond

	defaultUserAgent = "apivideo-go"
)

// Option configures a Browser.
type Option func(*browserOptions)

// browserOptions holds configuration options for the Browser.
type browserOptions struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	userAgent  string
	fs         afero.Fs
}

func defaultOptions() *browserOptions {
	return &browserOptions{
		baseURL:    ProductionBaseURL,
		timeout:    DefaultTimeout,
		retryDelay: DefaultRetryDelay,
		userAgent:  defaultUserAgent,
		fs:         afero.NewOsFs(),
	}
}

// WithBaseURL points the browser at a custom API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(o *browserOptions) {
		if baseURL != "" {
			o.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithSandbox switches the browser to the sandbox environment.
func WithSandbox() Option {
	return func(o *browserOptions) {
		o.baseURL = SandboxBaseURL
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *browserOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. The timeout option is
// ignored when a client is supplied.
func WithHTTPClient(client *http.Client) Option {
	return func(o *browserOptions) {
		o.httpClient = client
	}
}

// WithMaxRetries sets the maximum number of retry attempts.
func WithMaxRetries(retries int) Option {
	return func(o *browserOptions) {
		if retries >= 0 {
			o.maxRetries = retries
		}
	}
}

// WithRetryDelay sets the initial delay between retry attempts.
func WithRetryDelay(delay time.Duration) Option {
	return func(o *browserOptions) {
		if delay > 0 {
			o.retryDelay = delay
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *browserOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithFs sets the filesystem uploads are read from.
func WithFs(fs afero.Fs) Option {
	return func(o *browserOptions) {
		if fs != nil {
			o.fs = fs
		}
	}
}
