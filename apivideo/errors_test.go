package apivideo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/apivideo/browser"
)

func TestAPIError(t *testing.T) {
	t.Run("Error message from problem", func(t *testing.T) {
		err := newAPIError(&browser.Response{
			StatusCode: 400,
			Body:       []byte(`{"title":"A parameter is invalid.","detail":"name is required","status":400}`),
		})
		assert.Equal(t, "api.video API error: status 400: A parameter is invalid.: name is required", err.Error())
		assert.Equal(t, 400, err.Problem.Status)
	})

	t.Run("Error message without problem", func(t *testing.T) {
		err := newAPIError(&browser.Response{StatusCode: 502, Body: []byte("<html>bad gateway</html>")})
		assert.Equal(t, "api.video API error: status 502: Bad Gateway", err.Error())
		assert.Equal(t, "<html>bad gateway</html>", err.Response.String())
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := newAPIError(&browser.Response{StatusCode: 404})
		assert.True(t, err.IsNotFound())

		err.Response.StatusCode = 500
		assert.False(t, err.IsNotFound())
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{401, true},
			{403, true},
			{404, false},
			{500, false},
		}

		for _, tt := range tests {
			err := newAPIError(&browser.Response{StatusCode: tt.code})
			assert.Equal(t, tt.expected, err.IsUnauthorized())
		}
	})

	t.Run("nil response", func(t *testing.T) {
		err := &APIError{}
		assert.Equal(t, 0, err.StatusCode())
		assert.False(t, err.IsNotFound())
	})
}

func TestPagination_HasMorePages(t *testing.T) {
	p := Pagination{CurrentPage: 2, PagesTotal: 5}
	assert.True(t, p.HasMorePages())

	p.CurrentPage = 5
	assert.False(t, p.HasMorePages())

	assert.False(t, Pagination{}.HasMorePages())
}
