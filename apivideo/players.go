package apivideo

import "context"

const playersPath = "/players"

// Players is the client of the /players resource
type Players struct {
	resource resource[Player]
}

// Get retrieves a player by ID
func (p *Players) Get(ctx context.Context, playerID string) (*Player, error) {
	return p.resource.get(ctx, playerID)
}

// Create creates a player with the given properties
func (p *Players) Create(ctx context.Context, properties PlayerProperties) (*Player, error) {
	return p.resource.create(ctx, properties)
}

// Update patches a player with the non-nil properties
func (p *Players) Update(ctx context.Context, playerID string, properties PlayerProperties) (*Player, error) {
	return p.resource.update(ctx, playerID, properties)
}

// Delete deletes a player and returns the response status code
func (p *Players) Delete(ctx context.Context, playerID string) (int, error) {
	return p.resource.remove(ctx, p.resource.itemPath(playerID))
}

// Search lists players. Without params.CurrentPage every page is fetched
// and concatenated.
func (p *Players) Search(ctx context.Context, params PlayerSearchParams) ([]*Player, error) {
	return p.resource.search(ctx, params)
}

// UploadLogo uploads source as the logo of a player. link is the URL the
// logo points to and may be empty.
func (p *Players) UploadLogo(ctx context.Context, source, playerID, link string) (*Player, error) {
	var fields map[string]string
	if link != "" {
		fields = map[string]string{"link": link}
	}
	return p.resource.upload(ctx, p.resource.itemPath(playerID, "logo"), source, fields)
}

// DeleteLogo removes the logo of a player and returns the response status code
func (p *Players) DeleteLogo(ctx context.Context, playerID string) (int, error) {
	return p.resource.remove(ctx, p.resource.itemPath(playerID, "logo"))
}

// BatchDelete deletes several players concurrently
func (p *Players) BatchDelete(ctx context.Context, playerIDs []string) BatchDeleteResult {
	return p.resource.batchDelete(ctx, playerIDs)
}
