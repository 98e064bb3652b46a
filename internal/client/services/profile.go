package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kinshipapp/kinship/internal/client/api"
	"github.com/kinshipapp/kinship/internal/client/cache"
	"github.com/kinshipapp/kinship/internal/models"
)

// ProfileService serves profile reads and the update-profile mutation.
//
// Update is not optimistic: the cache only changes once the backend returns
// the stored profile, which then replaces the cached entry. Since profile
// changes can surface in both the feed and the match list, both caches are
// invalidated on success.
type ProfileService struct {
	client api.Client
	cache  *cache.Store
	ttl    time.Duration
}

func NewProfileService(client api.Client, c *cache.Store, ttl time.Duration) *ProfileService {
	return &ProfileService{client: client, cache: c, ttl: ttl}
}

// Get returns the profile for userID, served from cache while fresh.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return cache.GetOrFetch(ctx, s.cache, profileKey(userID), s.ttl, func(ctx context.Context) (*models.Profile, error) {
		return s.client.GetProfile(ctx, userID)
	})
}

// Update applies the given changes to the current user's profile.
func (s *ProfileService) Update(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error) {
	profile, err := s.client.UpdateProfile(ctx, update)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.cache.Set(profileKey(profile.UserID), profile, s.ttl)
	s.cache.Invalidate(cache.Key{"discover"})
	s.cache.Invalidate(matchesKey())
	return profile, nil
}
