// Package store is the mock backend's in-memory dataset: users, profiles,
// likes, matches, and messages. It exists so the client can be developed and
// demonstrated against realistic behavior without a real backend; nothing
// here survives a restart.
package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kinshipapp/kinship/internal/common"
	"github.com/kinshipapp/kinship/internal/models"
)

// Store holds all backend state behind one mutex. The dataset is small by
// construction, so contention is a non-issue.
type Store struct {
	mu sync.Mutex

	users    map[string]*models.User    // by user id
	emails   map[string]string          // email -> user id
	profiles map[string]*models.Profile // by user id

	likes  map[string]map[string]bool // liker user id -> liked user id
	passes map[string]map[string]bool

	matches  map[string]*models.Match
	messages map[string][]models.Message // by match id
	unread   map[string]map[string]int   // match id -> user id -> count

	// autoLikers like every new signup, so a mutual match is always
	// reachable from a fresh account.
	autoLikers []string

	now func() time.Time
}

func New() *Store {
	s := &Store{
		users:    make(map[string]*models.User),
		emails:   make(map[string]string),
		profiles: make(map[string]*models.Profile),
		likes:    make(map[string]map[string]bool),
		passes:   make(map[string]map[string]bool),
		matches:  make(map[string]*models.Match),
		messages: make(map[string][]models.Message),
		unread:   make(map[string]map[string]int),
		now:      time.Now,
	}
	s.seed()
	return s
}

// FindOrCreateUser returns the user for email, creating one (with an empty
// profile) on first sign-in. The second return reports whether the user was
// created.
func (s *Store) FindOrCreateUser(email string) (*models.User, bool) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.emails[email]; ok {
		u := *s.users[id]
		return &u, false
	}

	u := &models.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  displayNameFromEmail(email),
	}
	s.users[u.ID] = u
	s.emails[email] = u.ID
	s.profiles[u.ID] = &models.Profile{
		ID:     uuid.NewString(),
		UserID: u.ID,
		Name:   u.Name,
	}

	for _, likerID := range s.autoLikers {
		s.like(likerID, u.ID)
	}

	copied := *u
	return &copied, true
}

// User returns the user with the given id.
func (s *Store) User(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

// FeedFor returns every other user's profile the given user has not yet
// liked, passed, or matched with.
func (s *Store) FeedFor(userID string) []models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	feed := make([]models.Profile, 0)
	for otherID, p := range s.profiles {
		if otherID == userID {
			continue
		}
		if s.likes[userID][otherID] || s.passes[userID][otherID] {
			continue
		}
		if s.matchBetween(userID, otherID) != nil {
			continue
		}
		feed = append(feed, *p)
	}

	// Deterministic order for a stable client experience.
	sort.Slice(feed, func(i, j int) bool { return feed[i].Name < feed[j].Name })
	return feed
}

// Like records that userID likes the owner of profileID. If the other user
// already liked them back, a match is created and reported.
func (s *Store) Like(userID, profileID string) (*models.LikeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.profileOwner(profileID)
	if err != nil {
		return nil, err
	}

	match := s.like(userID, target)
	res := &models.LikeResult{ProfileID: profileID, Matched: match != nil}
	if match != nil {
		res.MatchID = match.ID
	}
	return res, nil
}

// Pass records that userID passed on the owner of profileID.
func (s *Store) Pass(userID, profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.profileOwner(profileID)
	if err != nil {
		return err
	}
	if s.passes[userID] == nil {
		s.passes[userID] = make(map[string]bool)
	}
	s.passes[userID][target] = true
	return nil
}

// MatchesFor returns the user's matches, most recent message first, each with
// the other participant and a last-message preview.
func (s *Store) MatchesFor(userID string) []models.MatchSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.MatchSummary, 0)
	for _, m := range s.matches {
		if m.UserA != userID && m.UserB != userID {
			continue
		}
		otherID := m.UserA
		if otherID == userID {
			otherID = m.UserB
		}

		summary := models.MatchSummary{Match: *m, Unread: s.unread[m.ID][userID]}
		if other, ok := s.users[otherID]; ok {
			copied := *other
			summary.OtherUser = &copied
		}
		if msgs := s.messages[m.ID]; len(msgs) > 0 {
			last := msgs[len(msgs)-1]
			summary.LastMessage = &last
		}
		result = append(result, summary)
	}

	sort.Slice(result, func(i, j int) bool {
		return lastActivity(result[i]).After(lastActivity(result[j]))
	})
	return result
}

// MessagesFor returns the conversation for matchID, ordered by timestamp.
// Reading resets the caller's unread counter. Non-participants get
// ErrNotFound rather than a hint that the match exists.
func (s *Store) MessagesFor(matchID, userID string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[matchID]
	if !ok || (m.UserA != userID && m.UserB != userID) {
		return nil, common.ErrNotFound
	}

	if s.unread[matchID] != nil {
		s.unread[matchID][userID] = 0
	}

	msgs := append([]models.Message(nil), s.messages[matchID]...)
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}

// AppendMessage stores a new message from senderID in matchID and bumps the
// recipient's unread counter.
func (s *Store) AppendMessage(matchID, senderID, content string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[matchID]
	if !ok || (m.UserA != senderID && m.UserB != senderID) {
		return nil, common.ErrNotFound
	}

	msg := models.Message{
		ID:        uuid.NewString(),
		MatchID:   matchID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	s.messages[matchID] = append(s.messages[matchID], msg)

	recipient := m.UserA
	if recipient == senderID {
		recipient = m.UserB
	}
	if s.unread[matchID] == nil {
		s.unread[matchID] = make(map[string]int)
	}
	s.unread[matchID][recipient]++

	copied := msg
	return &copied, nil
}

// ProfileByUserID returns the profile owned by userID.
func (s *Store) ProfileByUserID(userID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

// UpdateProfile merges the non-zero fields of update into userID's profile
// and returns the stored result.
func (s *Store) UpdateProfile(userID string, update models.ProfileUpdate) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, common.ErrNotFound
	}

	if update.Name != "" {
		p.Name = update.Name
		if u, ok := s.users[userID]; ok {
			u.Name = update.Name
		}
	}
	if update.Bio != "" {
		p.Bio = update.Bio
	}
	if update.AvatarURL != "" {
		p.AvatarURL = update.AvatarURL
	}
	if update.Age > 0 {
		p.Age = update.Age
	}
	if update.Interests != nil {
		p.Interests = append([]string(nil), update.Interests...)
	}

	copied := *p
	return &copied, nil
}

// like records the like and returns the resulting match, if any. Caller must
// hold s.mu.
func (s *Store) like(likerID, likedID string) *models.Match {
	if s.likes[likerID] == nil {
		s.likes[likerID] = make(map[string]bool)
	}
	s.likes[likerID][likedID] = true

	if existing := s.matchBetween(likerID, likedID); existing != nil {
		return existing
	}
	if !s.likes[likedID][likerID] {
		return nil
	}

	m := &models.Match{
		ID:        uuid.NewString(),
		UserA:     likerID,
		UserB:     likedID,
		CreatedAt: s.now().UTC(),
	}
	s.matches[m.ID] = m
	s.unread[m.ID] = make(map[string]int)
	return m
}

// matchBetween returns the match linking a and b, if one exists. Caller must
// hold s.mu.
func (s *Store) matchBetween(a, b string) *models.Match {
	for _, m := range s.matches {
		if (m.UserA == a && m.UserB == b) || (m.UserA == b && m.UserB == a) {
			return m
		}
	}
	return nil
}

// profileOwner resolves a profile id to its owner's user id. Caller must
// hold s.mu.
func (s *Store) profileOwner(profileID string) (string, error) {
	for userID, p := range s.profiles {
		if p.ID == profileID {
			return userID, nil
		}
	}
	return "", common.ErrNotFound
}

func lastActivity(m models.MatchSummary) time.Time {
	if m.LastMessage != nil {
		return m.LastMessage.CreatedAt
	}
	return m.CreatedAt
}

func displayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	local, _, _ = strings.Cut(local, ".")
	if local == "" {
		return "New member"
	}
	return strings.ToUpper(local[:1]) + local[1:]
}
