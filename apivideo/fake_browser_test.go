package apivideo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/apivideo/browser"
)

const itemsTotal = 250

// request is what fakeBrowser records for every call
type request struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    any
	Source  string
	Fields  map[string]string
}

// fakeBrowser implements Browser and records calls for verification
type fakeBrowser struct {
	mu       sync.Mutex
	requests []request
	handler  func(req request) *browser.Response
}

func (f *fakeBrowser) record(req request) (*browser.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.handler == nil {
		return jsonResponse(http.StatusOK, map[string]any{}), nil
	}
	return f.handler(req), nil
}

func (f *fakeBrowser) Get(ctx context.Context, path string) (*browser.Response, error) {
	return f.record(request{Method: http.MethodGet, Path: path})
}

func (f *fakeBrowser) Post(ctx context.Context, path string, headers map[string]string, body any) (*browser.Response, error) {
	return f.record(request{Method: http.MethodPost, Path: path, Headers: headers, Body: body})
}

func (f *fakeBrowser) Patch(ctx context.Context, path string, headers map[string]string, body any) (*browser.Response, error) {
	return f.record(request{Method: http.MethodPatch, Path: path, Headers: headers, Body: body})
}

func (f *fakeBrowser) Delete(ctx context.Context, path string) (*browser.Response, error) {
	return f.record(request{Method: http.MethodDelete, Path: path})
}

func (f *fakeBrowser) Submit(ctx context.Context, path, source string, fields map[string]string) (*browser.Response, error) {
	return f.record(request{Method: http.MethodPost, Path: path, Source: source, Fields: fields})
}

func (f *fakeBrowser) IsSuccessful(resp *browser.Response) bool {
	return resp.IsSuccess()
}

func (f *fakeBrowser) lastRequest() request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func (f *fakeBrowser) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func jsonResponse(status int, body any) *browser.Response {
	data, _ := json.Marshal(body)
	return &browser.Response{StatusCode: status, Body: data}
}

// pagedHandler serves total items from list paths and echoes objects
// built by item for single-item paths.
func pagedHandler(t *testing.T, total int, item func(i int) map[string]any) func(req request) *browser.Response {
	return func(req request) *browser.Response {
		path, rawQuery, found := strings.Cut(req.Path, "?")
		if !found || req.Method != http.MethodGet {
			return jsonResponse(http.StatusOK, item(0))
		}

		q, err := url.ParseQuery(rawQuery)
		require.NoError(t, err, path)

		page, _ := strconv.Atoi(q.Get("currentPage"))
		size, _ := strconv.Atoi(q.Get("pageSize"))
		pagesTotal := (total + size - 1) / size

		data := make([]map[string]any, 0, size)
		for i := (page - 1) * size; i < min(page*size, total); i++ {
			data = append(data, item(i))
		}

		return jsonResponse(http.StatusOK, map[string]any{
			"data": data,
			"pagination": map[string]any{
				"currentPage":      page,
				"currentPageItems": len(data),
				"pageSize":         size,
				"pagesTotal":       pagesTotal,
				"itemsTotal":       total,
			},
		})
	}
}

func newTestClient(fb *fakeBrowser, fs afero.Fs) *Client {
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	return New(fb, zerolog.Nop(), WithFs(fs))
}

// bodyJSON renders a recorded body the way the real browser would send it.
func bodyJSON(t *testing.T, body any) string {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return string(data)
}
