package apivideo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/s0up4200/apivideo/browser"
)

// resource implements the calls shared by every resource client. T is the
// model responses are cast into.
type resource[T any] struct {
	browser Browser
	path    string
	fs      afero.Fs
	logger  zerolog.Logger
}

func newResource[T any](b Browser, path string, fs afero.Fs, logger zerolog.Logger) resource[T] {
	return resource[T]{
		browser: b,
		path:    path,
		fs:      fs,
		logger:  logger.With().Str("resource", path).Logger(),
	}
}

func (r *resource[T]) itemPath(id string, sub ...string) string {
	p := r.path + "/" + url.PathEscape(id)
	for _, s := range sub {
		p += "/" + s
	}
	return p
}

func (r *resource[T]) get(ctx context.Context, id string) (*T, error) {
	resp, err := r.browser.Get(ctx, r.itemPath(id))
	if err != nil {
		return nil, err
	}
	return r.castResponse(resp)
}

func (r *resource[T]) create(ctx context.Context, body any) (*T, error) {
	resp, err := r.browser.Post(ctx, r.path, nil, body)
	if err != nil {
		return nil, err
	}
	return r.castResponse(resp)
}

func (r *resource[T]) update(ctx context.Context, id string, body any) (*T, error) {
	resp, err := r.browser.Patch(ctx, r.itemPath(id), nil, body)
	if err != nil {
		return nil, err
	}
	return r.castResponse(resp)
}

// remove deletes path and returns the response status code.
func (r *resource[T]) remove(ctx context.Context, path string) (int, error) {
	resp, err := r.browser.Delete(ctx, path)
	if err != nil {
		return 0, err
	}
	if !r.browser.IsSuccessful(resp) {
		return 0, newAPIError(resp)
	}

	r.logger.Info().
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("Deleted")
	return resp.StatusCode, nil
}

// removeCast deletes path and casts the returned body.
func (r *resource[T]) removeCast(ctx context.Context, path string) (*T, error) {
	resp, err := r.browser.Delete(ctx, path)
	if err != nil {
		return nil, err
	}
	return r.castResponse(resp)
}

// upload validates source locally, then submits it to path.
func (r *resource[T]) upload(ctx context.Context, path, source string, fields map[string]string) (*T, error) {
	if err := checkSource(r.fs, source); err != nil {
		return nil, err
	}

	resp, err := r.browser.Submit(ctx, path, source, fields)
	if err != nil {
		return nil, err
	}
	return r.castResponse(resp)
}

// search fetches the requested page, or every page in ascending order when
// no page was requested.
func (r *resource[T]) search(ctx context.Context, params searchParams) ([]*T, error) {
	values, err := query.Values(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search parameters: %w", err)
	}

	page := params.pageParams()
	explicit := page.CurrentPage > 0

	current := 1
	if explicit {
		current = page.CurrentPage
	}
	size := page.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	values.Set("pageSize", strconv.Itoa(size))

	all := make([]*T, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		values.Set("currentPage", strconv.Itoa(current))
		resp, err := r.browser.Get(ctx, r.path+"?"+values.Encode())
		if err != nil {
			return nil, err
		}
		if !r.browser.IsSuccessful(resp) {
			return nil, newAPIError(resp)
		}

		var envelope pageEnvelope
		if err := resp.Decode(&envelope); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}

		items, err := castAll[T](envelope.Data)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		r.logger.Debug().
			Int("page", current).
			Int("count", len(items)).
			Int("total", len(all)).
			Msg("Retrieved page")

		if explicit {
			break
		}

		// A missing or stale currentPage must not send the loop backwards.
		pagination := envelope.Pagination
		pagination.CurrentPage = max(pagination.CurrentPage, current)
		if !pagination.HasMorePages() {
			break
		}
		current = pagination.CurrentPage + 1
	}

	return all, nil
}

func (r *resource[T]) castResponse(resp *browser.Response) (*T, error) {
	if !r.browser.IsSuccessful(resp) {
		return nil, newAPIError(resp)
	}
	return cast[T](resp.Body)
}

func checkSource(fs afero.Fs, source string) error {
	info, err := fs.Stat(source)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%s must be a readable source file: %w", source, ErrSourceNotReadable)
	}
	if info.Size() <= 0 {
		return fmt.Errorf("%s is empty: %w", source, ErrSourceEmpty)
	}
	return nil
}
