package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinshipapp/kinship/internal/common"
	"github.com/kinshipapp/kinship/internal/models"
)

func matchWith(t *testing.T, s *Store, userID, otherID string) models.MatchSummary {
	t.Helper()
	for _, m := range s.MatchesFor(userID) {
		if m.OtherUser != nil && m.OtherUser.ID == otherID {
			return m
		}
	}
	t.Fatalf("no match between %s and %s", userID, otherID)
	return models.MatchSummary{}
}

func TestFindOrCreateUser_Idempotent(t *testing.T) {
	s := New()

	first, created := s.FindOrCreateUser("alex@school.edu")
	require.True(t, created)
	assert.Equal(t, "Alex", first.Name)

	second, created := s.FindOrCreateUser("Alex@School.EDU")
	assert.False(t, created, "lookup is case-insensitive")
	assert.Equal(t, first.ID, second.ID)
}

func TestFeedFor_ExcludesSelfAndDecidedProfiles(t *testing.T) {
	s := New()
	u, _ := s.FindOrCreateUser("alex@school.edu")

	feed := s.FeedFor(u.ID)
	require.Len(t, feed, 3, "all seeded profiles visible at first")

	require.NoError(t, s.Pass(u.ID, "p-mike"))
	feed = s.FeedFor(u.ID)
	require.Len(t, feed, 2)
	for _, p := range feed {
		assert.NotEqual(t, "p-mike", p.ID)
	}
}

func TestLike_MutualCreatesMatch(t *testing.T) {
	s := New()
	u, _ := s.FindOrCreateUser("alex@school.edu")

	// Sarah auto-likes new signups, so liking her back is mutual.
	res, err := s.Like(u.ID, "p-sarah")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.NotEmpty(t, res.MatchID)

	matches := s.MatchesFor(u.ID)
	require.Len(t, matches, 1)
	require.NotNil(t, matches[0].OtherUser)
	assert.Equal(t, "Sarah", matches[0].OtherUser.Name)

	// Liked profile no longer appears in the feed.
	for _, p := range s.FeedFor(u.ID) {
		assert.NotEqual(t, "p-sarah", p.ID)
	}
}

func TestLike_OneSidedDoesNotMatch(t *testing.T) {
	s := New()
	u, _ := s.FindOrCreateUser("alex@school.edu")

	res, err := s.Like(u.ID, "p-mike")
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Empty(t, s.MatchesFor(u.ID))
}

func TestLike_UnknownProfile(t *testing.T) {
	s := New()
	u, _ := s.FindOrCreateUser("alex@school.edu")

	_, err := s.Like(u.ID, "p-nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMessages_RoundTripAndUnread(t *testing.T) {
	s := New()
	u, _ := s.FindOrCreateUser("alex@school.edu")
	res, err := s.Like(u.ID, "p-sarah")
	require.NoError(t, err)

	msg, err := s.AppendMessage(res.MatchID, u.ID, "hey!")
	require.NoError(t, err)
	assert.Equal(t, "hey!", msg.Content)

	// Sarah has one unread in the conversation with Alex.
	sarahMatch := matchWith(t, s, "u-sarah", u.ID)
	assert.Equal(t, 1, sarahMatch.Unread)
	require.NotNil(t, sarahMatch.LastMessage)
	assert.Equal(t, "hey!", sarahMatch.LastMessage.Content)

	// Reading resets the counter.
	_, err = s.MessagesFor(res.MatchID, "u-sarah")
	require.NoError(t, err)
	assert.Equal(t, 0, matchWith(t, s, "u-sarah", u.ID).Unread)
}

func TestMessages_NonParticipantGetsNotFound(t *testing.T) {
	s := New()
	u, _ := s.FindOrCreateUser("alex@school.edu")
	res, err := s.Like(u.ID, "p-sarah")
	require.NoError(t, err)

	_, err = s.MessagesFor(res.MatchID, "u-mike")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = s.AppendMessage(res.MatchID, "u-mike", "let me in")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSeed_SarahAndMikeHaveAConversation(t *testing.T) {
	s := New()

	m := matchWith(t, s, "u-sarah", "u-mike")
	msgs, err := s.MessagesFor(m.ID, "u-sarah")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.True(t, msgs[0].CreatedAt.Before(msgs[1].CreatedAt))

	// Matched seed users do not see each other in the feed.
	for _, p := range s.FeedFor("u-sarah") {
		assert.NotEqual(t, "u-mike", p.UserID)
	}
}

func TestUpdateProfile_MergesNonZeroFields(t *testing.T) {
	s := New()
	u, _ := s.FindOrCreateUser("alex@school.edu")

	p, err := s.UpdateProfile(u.ID, models.ProfileUpdate{Name: "Alexandra", Bio: "Bio here"})
	require.NoError(t, err)
	assert.Equal(t, "Alexandra", p.Name)
	assert.Equal(t, "Bio here", p.Bio)

	// Empty fields leave existing values alone.
	p, err = s.UpdateProfile(u.ID, models.ProfileUpdate{Age: 22})
	require.NoError(t, err)
	assert.Equal(t, "Alexandra", p.Name)
	assert.Equal(t, "Bio here", p.Bio)

	// The display name follows the profile name.
	user, err := s.User(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alexandra", user.Name)
}
