package apivideo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/apivideo/browser"
)

const playerID = "plx1x1x1x1x1x1x1x1x1x"

func playerProperties() PlayerProperties {
	return PlayerProperties{
		ShapeMargin:           Int(10),
		ShapeRadius:           Int(3),
		ShapeAspect:           String("flat"),
		ShapeBackgroundTop:    String("rgba(50, 50, 50, .7)"),
		ShapeBackgroundBottom: String("rgba(50, 50, 50, .8)"),
		Text:                  String("rgba(255, 255, 255, .95)"),
		Link:                  String("rgba(255, 0, 0, .95)"),
		LinkHover:             String("rgba(255, 255, 255, .75)"),
		LinkActive:            String("rgba(255, 0, 0, .75)"),
		TrackPlayed:           String("rgba(255, 255, 255, .95)"),
		TrackUnplayed:         String("rgba(255, 255, 255, .1)"),
		TrackBackground:       String("rgba(0, 0, 0, 0)"),
		BackgroundTop:         String("rgba(72, 4, 45, 1)"),
		BackgroundBottom:      String("rgba(94, 95, 89, 1)"),
		BackgroundText:        String("rgba(255, 255, 255, .95)"),
		EnableAPI:             Bool(true),
		EnableControls:        Bool(true),
		ForceAutoplay:         Bool(false),
		HideTitle:             Bool(false),
		ForceLoop:             Bool(false),
	}
}

const playerPropertiesJSON = `{
	"shapeMargin": 10,
	"shapeRadius": 3,
	"shapeAspect": "flat",
	"shapeBackgroundTop": "rgba(50, 50, 50, .7)",
	"shapeBackgroundBottom": "rgba(50, 50, 50, .8)",
	"text": "rgba(255, 255, 255, .95)",
	"link": "rgba(255, 0, 0, .95)",
	"linkHover": "rgba(255, 255, 255, .75)",
	"linkActive": "rgba(255, 0, 0, .75)",
	"trackPlayed": "rgba(255, 255, 255, .95)",
	"trackUnplayed": "rgba(255, 255, 255, .1)",
	"trackBackground": "rgba(0, 0, 0, 0)",
	"backgroundTop": "rgba(72, 4, 45, 1)",
	"backgroundBottom": "rgba(94, 95, 89, 1)",
	"backgroundText": "rgba(255, 255, 255, .95)",
	"enableApi": true,
	"enableControls": true,
	"forceAutoplay": false,
	"hideTitle": false,
	"forceLoop": false
}`

func playerItem(i int) map[string]any {
	var item map[string]any
	_ = json.Unmarshal([]byte(playerPropertiesJSON), &item)
	item["playerId"] = fmt.Sprintf("pl%04d", i)
	item["logo"] = map[string]any{}
	item["assets"] = map[string]any{"link": "ignored"}
	return item
}

func newPlayersFixture(t *testing.T) (*fakeBrowser, *Players) {
	fb := &fakeBrowser{handler: pagedHandler(t, itemsTotal, playerItem)}
	return fb, newTestClient(fb, nil).Players
}

func TestPlayers_Create(t *testing.T) {
	fb, players := newPlayersFixture(t)

	player, err := players.Create(context.Background(), playerProperties())
	require.NoError(t, err)
	require.NotNil(t, player)

	require.Equal(t, 1, fb.requestCount())
	req := fb.lastRequest()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/players", req.Path)
	assert.JSONEq(t, playerPropertiesJSON, bodyJSON(t, req.Body))
}

func TestPlayers_Update(t *testing.T) {
	fb, players := newPlayersFixture(t)

	_, err := players.Update(context.Background(), playerID, playerProperties())
	require.NoError(t, err)

	req := fb.lastRequest()
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/players/"+playerID, req.Path)
	assert.JSONEq(t, playerPropertiesJSON, bodyJSON(t, req.Body))
}

func TestPlayers_UpdateSendsOnlySetFields(t *testing.T) {
	fb, players := newPlayersFixture(t)

	_, err := players.Update(context.Background(), playerID, PlayerProperties{HideTitle: Bool(false)})
	require.NoError(t, err)

	assert.JSONEq(t, `{"hideTitle":false}`, bodyJSON(t, fb.lastRequest().Body))
}

func TestPlayers_Get(t *testing.T) {
	fb, players := newPlayersFixture(t)

	player, err := players.Get(context.Background(), playerID)
	require.NoError(t, err)

	assert.Equal(t, request{Method: http.MethodGet, Path: "/players/" + playerID}, fb.lastRequest())
	assert.ElementsMatch(t, keys(playerItem(0)), append(keys(player.Fields()), "assets"))
}

func TestPlayers_SearchFirstPage(t *testing.T) {
	fb, players := newPlayersFixture(t)

	result, err := players.Search(context.Background(), PlayerSearchParams{
		PageParams: PageParams{CurrentPage: 1, PageSize: 25},
	})
	require.NoError(t, err)

	assert.Len(t, result, 25)
	require.Equal(t, 1, fb.requestCount())
	assert.Equal(t, "/players?currentPage=1&pageSize=25", fb.lastRequest().Path)
}

func TestPlayers_SearchWithoutParameters(t *testing.T) {
	fb, players := newPlayersFixture(t)

	result, err := players.Search(context.Background(), PlayerSearchParams{})
	require.NoError(t, err)

	assert.Len(t, result, itemsTotal)
	assert.Equal(t, "/players?currentPage=1&pageSize=100", fb.requests[0].Path)
	assert.Equal(t, 3, fb.requestCount())
}

func TestPlayers_UploadLogo(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/test.png", []byte("PNG"), 0o644))

	fb := &fakeBrowser{handler: pagedHandler(t, itemsTotal, playerItem)}
	players := newTestClient(fb, fs).Players

	player, err := players.UploadLogo(context.Background(), "/data/test.png", playerID, "https://api.video")
	require.NoError(t, err)
	assert.NotNil(t, player)

	req := fb.lastRequest()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/players/"+playerID+"/logo", req.Path)
	assert.Equal(t, "/data/test.png", req.Source)
	assert.Equal(t, map[string]string{"link": "https://api.video"}, req.Fields)
}

func TestPlayers_UploadLogoWithoutLink(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/test.png", []byte("PNG"), 0o644))

	fb := &fakeBrowser{handler: pagedHandler(t, itemsTotal, playerItem)}
	players := newTestClient(fb, fs).Players

	_, err := players.UploadLogo(context.Background(), "/data/test.png", playerID, "")
	require.NoError(t, err)
	assert.Nil(t, fb.lastRequest().Fields)
}

func TestPlayers_UploadLogoMissingSource(t *testing.T) {
	fb := &fakeBrowser{}
	players := newTestClient(fb, afero.NewMemMapFs()).Players

	_, err := players.UploadLogo(context.Background(), "/data/missing.png", playerID, "")
	require.ErrorIs(t, err, ErrSourceNotReadable)
	assert.Equal(t, 0, fb.requestCount())
}

func TestPlayers_DeleteLogo(t *testing.T) {
	fb, players := newPlayersFixture(t)
	fb.handler = func(req request) *browser.Response {
		return &browser.Response{StatusCode: http.StatusNoContent}
	}

	status, err := players.DeleteLogo(context.Background(), playerID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, request{Method: http.MethodDelete, Path: "/players/" + playerID + "/logo"}, fb.lastRequest())
}

func TestPlayers_Delete(t *testing.T) {
	fb, players := newPlayersFixture(t)
	fb.handler = func(req request) *browser.Response {
		return &browser.Response{StatusCode: http.StatusNoContent}
	}

	status, err := players.Delete(context.Background(), playerID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, 1, fb.requestCount())
	assert.Equal(t, request{Method: http.MethodDelete, Path: "/players/" + playerID}, fb.lastRequest())
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
