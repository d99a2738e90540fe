package apivideo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/apivideo/browser"
)

func newAPIServer(t *testing.T, mux *http.ServeMux) *httptest.Server {
	t.Helper()

	mux.HandleFunc("POST /auth/api-key", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token_type":    "Bearer",
			"expires_in":    3600,
			"access_token":  "access",
			"refresh_token": "refresh",
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestNewClient(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)

	t.Run("missing api key", func(t *testing.T) {
		client, err := NewClient("", logger)
		require.ErrorIs(t, err, browser.ErrMissingAPIKey)
		assert.Nil(t, client)
	})

	t.Run("lives and players share the browser", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /live-streams", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{liveItem(0), liveItem(1)},
				"pagination": map[string]any{
					"currentPage": 1,
					"pagesTotal":  1,
					"itemsTotal":  2,
				},
			})
		})
		mux.HandleFunc("GET /players/{id}", func(w http.ResponseWriter, r *http.Request) {
			item := playerItem(0)
			item["playerId"] = r.PathValue("id")
			_ = json.NewEncoder(w).Encode(item)
		})
		server := newAPIServer(t, mux)

		client, err := NewClient("test-key", logger, browser.WithBaseURL(server.URL))
		require.NoError(t, err)

		lives, err := client.Lives.Search(context.Background(), LiveSearchParams{})
		require.NoError(t, err)
		require.Len(t, lives, 2)
		assert.Equal(t, "li0001", lives[1].LiveStreamID)

		player, err := client.Players.Get(context.Background(), playerID)
		require.NoError(t, err)
		assert.Equal(t, playerID, player.PlayerID)
		assert.True(t, player.EnableAPI)
	})

	t.Run("upload reads from the browser filesystem", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/logo.png", []byte("PNG"), 0o644))

		mux := http.NewServeMux()
		mux.HandleFunc("POST /players/{id}/logo", func(w http.ResponseWriter, r *http.Request) {
			if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			assert.Equal(t, "https://api.video", r.FormValue("link"))

			file, header, err := r.FormFile("file")
			if !assert.NoError(t, err) {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			defer file.Close()
			assert.Equal(t, "logo.png", header.Filename)

			item := playerItem(0)
			item["logo"] = map[string]any{"logo": "https://cdn.api.video/logo.png", "link": "https://api.video"}
			_ = json.NewEncoder(w).Encode(item)
		})
		server := newAPIServer(t, mux)

		client, err := NewClient("test-key", logger, browser.WithBaseURL(server.URL), browser.WithFs(fs))
		require.NoError(t, err)

		player, err := client.Players.UploadLogo(context.Background(), "/logo.png", playerID, "https://api.video")
		require.NoError(t, err)
		require.NotNil(t, player.Logo)
		assert.Equal(t, "https://api.video", player.Logo.Link)
	})

	t.Run("api errors surface the raw response", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("DELETE /live-streams/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"title":"The requested resource was not found.","status":404,"name":"liveStreamId"}`))
		})
		server := newAPIServer(t, mux)

		client, err := NewClient("test-key", logger, browser.WithBaseURL(server.URL), browser.WithMaxRetries(0))
		require.NoError(t, err)

		_, err = client.Lives.Delete(context.Background(), "missing")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.True(t, apiErr.IsNotFound())
		assert.Equal(t, "application/problem+json", apiErr.Response.Header.Get("Content-Type"))
	})
}
