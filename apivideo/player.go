package apivideo

import "encoding/json"

// Player is a player theme as returned by the API
type Player struct {
	PlayerID              string      `json:"playerId"`
	ShapeMargin           int         `json:"shapeMargin"`
	ShapeRadius           int         `json:"shapeRadius"`
	ShapeAspect           string      `json:"shapeAspect"`
	ShapeBackgroundTop    string      `json:"shapeBackgroundTop"`
	ShapeBackgroundBottom string      `json:"shapeBackgroundBottom"`
	Text                  string      `json:"text"`
	Link                  string      `json:"link"`
	LinkHover             string      `json:"linkHover"`
	LinkActive            string      `json:"linkActive"`
	TrackPlayed           string      `json:"trackPlayed"`
	TrackUnplayed         string      `json:"trackUnplayed"`
	TrackBackground       string      `json:"trackBackground"`
	BackgroundTop         string      `json:"backgroundTop"`
	BackgroundBottom      string      `json:"backgroundBottom"`
	BackgroundText        string      `json:"backgroundText"`
	EnableAPI             bool        `json:"enableApi"`
	EnableControls        bool        `json:"enableControls"`
	ForceAutoplay         bool        `json:"forceAutoplay"`
	HideTitle             bool        `json:"hideTitle"`
	ForceLoop             bool        `json:"forceLoop"`
	Logo                  *PlayerLogo `json:"logo"`
}

// PlayerLogo is the logo shown by a player
type PlayerLogo struct {
	Logo string `json:"logo,omitempty" yaml:"logo,omitempty" expr:"logo"`
	Link string `json:"link,omitempty" yaml:"link,omitempty" expr:"link"`
}

// Fields returns the player's allowed fields keyed by API name
func (p *Player) Fields() map[string]any {
	return map[string]any{
		"playerId":              p.PlayerID,
		"shapeMargin":           p.ShapeMargin,
		"shapeRadius":           p.ShapeRadius,
		"shapeAspect":           p.ShapeAspect,
		"shapeBackgroundTop":    p.ShapeBackgroundTop,
		"shapeBackgroundBottom": p.ShapeBackgroundBottom,
		"text":                  p.Text,
		"link":                  p.Link,
		"linkHover":             p.LinkHover,
		"linkActive":            p.LinkActive,
		"trackPlayed":           p.TrackPlayed,
		"trackUnplayed":         p.TrackUnplayed,
		"trackBackground":       p.TrackBackground,
		"backgroundTop":         p.BackgroundTop,
		"backgroundBottom":      p.BackgroundBottom,
		"backgroundText":        p.BackgroundText,
		"enableApi":             p.EnableAPI,
		"enableControls":        p.EnableControls,
		"forceAutoplay":         p.ForceAutoplay,
		"hideTitle":             p.HideTitle,
		"forceLoop":             p.ForceLoop,
		"logo":                  p.Logo,
	}
}

// PlayerProperties is the body of a player create or update. Nil fields are
// left out of the request.
type PlayerProperties struct {
	ShapeMargin           *int    `json:"shapeMargin,omitempty" yaml:"shapeMargin,omitempty"`
	ShapeRadius           *int    `json:"shapeRadius,omitempty" yaml:"shapeRadius,omitempty"`
	ShapeAspect           *string `json:"shapeAspect,omitempty" yaml:"shapeAspect,omitempty"`
	ShapeBackgroundTop    *string `json:"shapeBackgroundTop,omitempty" yaml:"shapeBackgroundTop,omitempty"`
	ShapeBackgroundBottom *string `json:"shapeBackgroundBottom,omitempty" yaml:"shapeBackgroundBottom,omitempty"`
	Text                  *string `json:"text,omitempty" yaml:"text,omitempty"`
	Link                  *string `json:"link,omitempty" yaml:"link,omitempty"`
	LinkHover             *string `json:"linkHover,omitempty" yaml:"linkHover,omitempty"`
	LinkActive            *string `json:"linkActive,omitempty" yaml:"linkActive,omitempty"`
	TrackPlayed           *string `json:"trackPlayed,omitempty" yaml:"trackPlayed,omitempty"`
	TrackUnplayed         *string `json:"trackUnplayed,omitempty" yaml:"trackUnplayed,omitempty"`
	TrackBackground       *string `json:"trackBackground,omitempty" yaml:"trackBackground,omitempty"`
	BackgroundTop         *string `json:"backgroundTop,omitempty" yaml:"backgroundTop,omitempty"`
	BackgroundBottom      *string `json:"backgroundBottom,omitempty" yaml:"backgroundBottom,omitempty"`
	BackgroundText        *string `json:"backgroundText,omitempty" yaml:"backgroundText,omitempty"`
	EnableAPI             *bool   `json:"enableApi,omitempty" yaml:"enableApi,omitempty"`
	EnableControls        *bool   `json:"enableControls,omitempty" yaml:"enableControls,omitempty"`
	ForceAutoplay         *bool   `json:"forceAutoplay,omitempty" yaml:"forceAutoplay,omitempty"`
	HideTitle             *bool   `json:"hideTitle,omitempty" yaml:"hideTitle,omitempty"`
	ForceLoop             *bool   `json:"forceLoop,omitempty" yaml:"forceLoop,omitempty"`
}

// PlayerSearchParams filters a player search
type PlayerSearchParams struct {
	PageParams
	SortBy    string `url:"sortBy,omitempty"`
	SortOrder string `url:"sortOrder,omitempty"`
}

// CastPlayer converts a raw API object into a Player. It returns nil for
// empty or null input.
func CastPlayer(raw []byte) (*Player, error) {
	return cast[Player](raw)
}

// CastPlayers converts a collection of raw API objects, preserving order
func CastPlayers(collection []json.RawMessage) ([]*Player, error) {
	return castAll[Player](collection)
}

// Bool returns a pointer to v
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v
func Int(v int) *int { return &v }

// String returns a pointer to v
func String(v string) *string { return &v }
