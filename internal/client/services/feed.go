package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kinshipapp/kinship/internal/client/api"
	"github.com/kinshipapp/kinship/internal/client/cache"
	"github.com/kinshipapp/kinship/internal/client/notify"
	"github.com/kinshipapp/kinship/internal/logging"
	"github.com/kinshipapp/kinship/internal/models"
)

// FeedService owns the discovery feed and the like/pass mutations.
//
// Neither mutation is optimistic: the feed only changes after the backend
// confirms, so a failed call leaves the cached feed untouched.
type FeedService struct {
	client   api.Client
	cache    *cache.Store
	notifier *notify.Notifier
	logger   logging.Logger
	ttl      time.Duration
}

func NewFeedService(client api.Client, c *cache.Store, n *notify.Notifier, logger logging.Logger, ttl time.Duration) *FeedService {
	return &FeedService{
		client:   client,
		cache:    c,
		notifier: n,
		logger:   logger.With("component", "feed"),
		ttl:      ttl,
	}
}

// Feed returns the discovery feed, served from cache while fresh.
func (s *FeedService) Feed(ctx context.Context) ([]models.Profile, error) {
	return cache.GetOrFetch(ctx, s.cache, feedKey(), s.ttl, s.client.Feed)
}

// Like likes a profile. On success the profile is removed from the cached
// feed; a mutual match additionally invalidates the match list and fires a
// match notification.
func (s *FeedService) Like(ctx context.Context, profileID string) (*models.LikeResult, error) {
	// Grab the display name before the profile disappears from the feed.
	likedName := s.profileName(profileID)

	res, err := s.client.Like(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("like: %w", err)
	}

	s.removeFromFeed(res.ProfileID)

	if res.Matched {
		s.cache.Invalidate(matchesKey())
		s.notifier.PublishMatch(likedName, res.MatchID)
		s.logger.Info(ctx, "mutual match", "match_id", res.MatchID)
	}
	return res, nil
}

// Pass passes on a profile. On success the profile is removed from the
// cached feed.
func (s *FeedService) Pass(ctx context.Context, profileID string) error {
	if err := s.client.Pass(ctx, profileID); err != nil {
		return fmt.Errorf("pass: %w", err)
	}
	s.removeFromFeed(profileID)
	return nil
}

func (s *FeedService) removeFromFeed(profileID string) {
	s.cache.Update(feedKey(), func(old any) any {
		feed, ok := old.([]models.Profile)
		if !ok {
			return old
		}
		filtered := make([]models.Profile, 0, len(feed))
		for _, p := range feed {
			if p.ID != profileID {
				filtered = append(filtered, p)
			}
		}
		return filtered
	})
}

func (s *FeedService) profileName(profileID string) string {
	feed, _ := cache.Cached[[]models.Profile](s.cache, feedKey())
	for _, p := range feed {
		if p.ID == profileID {
			return p.Name
		}
	}
	return "Someone"
}
