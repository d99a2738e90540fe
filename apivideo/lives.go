package apivideo

import (
	"context"
	"strings"
)

const livesPath = "/live-streams"

// Lives is the client of the /live-streams resource
type Lives struct {
	resource resource[Live]
}

// Get retrieves a live stream by ID
func (l *Lives) Get(ctx context.Context, liveStreamID string) (*Live, error) {
	return l.resource.get(ctx, liveStreamID)
}

// Create creates a live stream named name. The name argument wins over
// properties.Name and must not be blank.
func (l *Lives) Create(ctx context.Context, name string, properties LiveProperties) (*Live, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrMissingName
	}
	properties.Name = name
	return l.resource.create(ctx, properties)
}

// Update patches a live stream with the non-nil properties
func (l *Lives) Update(ctx context.Context, liveStreamID string, properties LiveProperties) (*Live, error) {
	return l.resource.update(ctx, liveStreamID, properties)
}

// Delete deletes a live stream and returns the response status code
func (l *Lives) Delete(ctx context.Context, liveStreamID string) (int, error) {
	return l.resource.remove(ctx, l.resource.itemPath(liveStreamID))
}

// Search lists live streams. Without params.CurrentPage every page is
// fetched and concatenated.
func (l *Lives) Search(ctx context.Context, params LiveSearchParams) ([]*Live, error) {
	return l.resource.search(ctx, params)
}

// UploadThumbnail uploads source as the thumbnail of a live stream
func (l *Lives) UploadThumbnail(ctx context.Context, source, liveStreamID string) (*Live, error) {
	return l.resource.upload(ctx, l.resource.itemPath(liveStreamID, "thumbnail"), source, nil)
}

// DeleteThumbnail removes the custom thumbnail of a live stream
func (l *Lives) DeleteThumbnail(ctx context.Context, liveStreamID string) (*Live, error) {
	return l.resource.removeCast(ctx, l.resource.itemPath(liveStreamID, "thumbnail"))
}

// BatchDelete deletes several live streams concurrently
func (l *Lives) BatchDelete(ctx context.Context, liveStreamIDs []string) BatchDeleteResult {
	return l.resource.batchDelete(ctx, liveStreamIDs)
}
