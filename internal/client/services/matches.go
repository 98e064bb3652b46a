package services

import (
	"context"
	"time"

	"github.com/kinshipapp/kinship/internal/client/api"
	"github.com/kinshipapp/kinship/internal/client/cache"
	"github.com/kinshipapp/kinship/internal/models"
)

// MatchesService serves the match list. It is read-only from the client's
// point of view: matches are created by the backend as a side effect of
// mutual likes, so this cache is kept consistent purely by invalidation.
type MatchesService struct {
	client api.Client
	cache  *cache.Store
	ttl    time.Duration
}

func NewMatchesService(client api.Client, c *cache.Store, ttl time.Duration) *MatchesService {
	return &MatchesService{client: client, cache: c, ttl: ttl}
}

// List returns the current matches with last-message previews.
func (s *MatchesService) List(ctx context.Context) ([]models.MatchSummary, error) {
	return cache.GetOrFetch(ctx, s.cache, matchesKey(), s.ttl, s.client.Matches)
}
