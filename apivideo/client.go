package apivideo

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/s0up4200/apivideo/browser"
)

// Browser is the transport the resource clients are built on
type Browser interface {
	Get(ctx context.Context, path string) (*browser.Response, error)
	Post(ctx context.Context, path string, headers map[string]string, body any) (*browser.Response, error)
	Patch(ctx context.Context, path string, headers map[string]string, body any) (*browser.Response, error)
	Delete(ctx context.Context, path string) (*browser.Response, error)
	Submit(ctx context.Context, path, source string, fields map[string]string) (*browser.Response, error)
	IsSuccessful(resp *browser.Response) bool
}

// Client groups the resource clients of the api.video API
type Client struct {
	Lives   *Lives
	Players *Players
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	fs afero.Fs
}

// WithFs sets the filesystem upload sources are validated against. It should
// match the filesystem the browser reads uploads from.
func WithFs(fs afero.Fs) Option {
	return func(o *clientOptions) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// New creates a Client on top of an existing Browser
func New(b Browser, logger zerolog.Logger, opts ...Option) *Client {
	o := &clientOptions{fs: afero.NewOsFs()}
	if withFs, ok := b.(interface{ Fs() afero.Fs }); ok {
		o.fs = withFs.Fs()
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Client{
		Lives:   &Lives{resource: newResource[Live](b, livesPath, o.fs, logger)},
		Players: &Players{resource: newResource[Player](b, playersPath, o.fs, logger)},
	}
}

// NewClient creates a Client with its own Browser authenticating with apiKey
func NewClient(apiKey string, logger zerolog.Logger, opts ...browser.Option) (*Client, error) {
	b, err := browser.New(apiKey, logger, opts...)
	if err != nil {
		return nil, err
	}
	return New(b, logger), nil
}
