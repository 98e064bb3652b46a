package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kinshipapp/kinship/internal/client/api"
	"github.com/kinshipapp/kinship/internal/client/cache"
	"github.com/kinshipapp/kinship/internal/client/notify"
	"github.com/kinshipapp/kinship/internal/logging"
	"github.com/kinshipapp/kinship/internal/models"
)

// ChatService owns per-match message lists and the send-message mutation.
//
// Send is optimistic: the message is appended to the cached conversation with
// a locally-generated id before the backend confirms. A failed send leaves
// the optimistic entry in place and surfaces the error separately; the next
// successful refetch replaces the whole list and reconciles naturally.
type ChatService struct {
	client   api.Client
	cache    *cache.Store
	notifier *notify.Notifier
	logger   logging.Logger
	ttl      time.Duration

	now func() time.Time
}

func NewChatService(client api.Client, c *cache.Store, n *notify.Notifier, logger logging.Logger, ttl time.Duration) *ChatService {
	return &ChatService{
		client:   client,
		cache:    c,
		notifier: n,
		logger:   logger.With("component", "chat"),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Messages returns the conversation for matchID ordered by timestamp.
// Ordering is always derived from CreatedAt, never from arrival order, since
// delivery may be out of order.
func (s *ChatService) Messages(ctx context.Context, matchID string) ([]models.Message, error) {
	msgs, err := cache.GetOrFetch(ctx, s.cache, messagesKey(matchID), s.ttl, func(ctx context.Context) ([]models.Message, error) {
		return s.client.Messages(ctx, matchID)
	})
	if err != nil {
		return nil, err
	}
	return sortedByTimestamp(msgs), nil
}

// Send appends the message optimistically and then delivers it. The returned
// message is the server's copy on success, or the optimistic local copy
// alongside the error on failure.
func (s *ChatService) Send(ctx context.Context, matchID, senderID, content string) (*models.Message, error) {
	local := models.Message{
		ID:        "local-" + uuid.NewString(),
		MatchID:   matchID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	s.appendToConversation(matchID, local)

	msg, err := s.client.SendMessage(ctx, matchID, content)
	if err != nil {
		// The optimistic entry stays; the caller surfaces the error.
		return &local, fmt.Errorf("send message: %w", err)
	}

	// The last-message preview on the match list just changed.
	s.cache.Invalidate(matchesKey())
	return msg, nil
}

// StartPolling re-validates the conversation cache on a fixed interval while
// the conversation view is mounted. It blocks until ctx is cancelled; run it
// on its own goroutine and cancel the context on view teardown. The ticker is
// released on every exit path. New messages from other participants raise a
// message notification.
func (s *ChatService) StartPolling(ctx context.Context, matchID, selfID string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	seen := s.knownMessageIDs(matchID)

	for {
		select {
		case <-ticker.C:
			s.cache.Invalidate(messagesKey(matchID))
			msgs, err := s.Messages(ctx, matchID)
			if err != nil {
				s.logger.Warn(ctx, "poll refresh failed", "match_id", matchID, "error", err)
				continue
			}
			for _, msg := range msgs {
				if _, ok := seen[msg.ID]; ok {
					continue
				}
				seen[msg.ID] = struct{}{}
				if msg.SenderID != selfID {
					s.notifier.PublishMessage(msg.SenderID, matchID, msg.Content)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}

func (s *ChatService) appendToConversation(matchID string, msg models.Message) {
	key := messagesKey(matchID)
	updated := s.cache.Update(key, func(old any) any {
		msgs, ok := old.([]models.Message)
		if !ok {
			return old
		}
		return append(append([]models.Message(nil), msgs...), msg)
	})
	if !updated {
		// Conversation not loaded yet; seed it so the optimistic entry is
		// visible immediately.
		s.cache.Set(key, []models.Message{msg}, s.ttl)
	}
}

func (s *ChatService) knownMessageIDs(matchID string) map[string]struct{} {
	ids := make(map[string]struct{})
	msgs, _ := cache.Cached[[]models.Message](s.cache, messagesKey(matchID))
	for _, msg := range msgs {
		ids[msg.ID] = struct{}{}
	}
	return ids
}

func sortedByTimestamp(msgs []models.Message) []models.Message {
	sorted := append([]models.Message(nil), msgs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}
