package apivideo

import "encoding/json"

// Live is a live stream as returned by the API
type Live struct {
	LiveStreamID string      `json:"liveStreamId"`
	Name         string      `json:"name"`
	StreamKey    string      `json:"streamKey"`
	Record       bool        `json:"record"`
	Broadcasting bool        `json:"broadcasting"`
	PlayerID     string      `json:"playerId"`
	Public       bool        `json:"public"`
	Assets       *LiveAssets `json:"assets"`
}

// LiveAssets holds the playback URLs of a live stream
type LiveAssets struct {
	Iframe    string `json:"iframe,omitempty" yaml:"iframe,omitempty" expr:"iframe"`
	Player    string `json:"player,omitempty" yaml:"player,omitempty" expr:"player"`
	HLS       string `json:"hls,omitempty" yaml:"hls,omitempty" expr:"hls"`
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty" expr:"thumbnail"`
}

// Fields returns the live stream's allowed fields keyed by API name
func (l *Live) Fields() map[string]any {
	return map[string]any{
		"liveStreamId": l.LiveStreamID,
		"name":         l.Name,
		"streamKey":    l.StreamKey,
		"record":       l.Record,
		"broadcasting": l.Broadcasting,
		"playerId":     l.PlayerID,
		"public":       l.Public,
		"assets":       l.Assets,
	}
}

// LiveProperties is the body of a live stream create or update. Nil fields
// are left out of the request.
type LiveProperties struct {
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Record   *bool   `json:"record,omitempty" yaml:"record,omitempty"`
	PlayerID *string `json:"playerId,omitempty" yaml:"playerId,omitempty"`
	Public   *bool   `json:"public,omitempty" yaml:"public,omitempty"`
}

// LiveSearchParams filters a live stream search
type LiveSearchParams struct {
	PageParams
	StreamKey string `url:"streamKey,omitempty"`
	Name      string `url:"name,omitempty"`
	SortBy    string `url:"sortBy,omitempty"`
	SortOrder string `url:"sortOrder,omitempty"`
}

// CastLive converts a raw API object into a Live. It returns nil for empty
// or null input.
func CastLive(raw []byte) (*Live, error) {
	return cast[Live](raw)
}

// CastLives converts a collection of raw API objects, preserving order
func CastLives(collection []json.RawMessage) ([]*Live, error) {
	return castAll[Live](collection)
}
