package store

import (
	"time"

	"github.com/kinshipapp/kinship/internal/models"
)

// Seed dataset. Sarah and Emma auto-like new signups so a fresh account can
// reach a mutual match immediately; Mike only matches if he is liked after
// the user appears in his feed, which never happens in a single-user demo,
// so liking him exercises the no-match path.
func (s *Store) seed() {
	seedUsers := []struct {
		user    models.User
		profile models.Profile
	}{
		{
			user: models.User{ID: "u-sarah", Email: "sarah@school.edu", Name: "Sarah"},
			profile: models.Profile{
				ID: "p-sarah", UserID: "u-sarah", Name: "Sarah", Age: 21,
				Bio:       "Psych major, dog person, will beat you at pool.",
				AvatarURL: "https://i.pravatar.cc/300?u=sarah",
				Interests: []string{"psychology", "pool", "dogs"},
			},
		},
		{
			user: models.User{ID: "u-mike", Email: "mike@school.edu", Name: "Mike"},
			profile: models.Profile{
				ID: "p-mike", UserID: "u-mike", Name: "Mike", Age: 23,
				Bio:       "CS grad student. Ask me about my espresso setup.",
				AvatarURL: "https://i.pravatar.cc/300?u=mike",
				Interests: []string{"coffee", "climbing", "compilers"},
			},
		},
		{
			user: models.User{ID: "u-emma", Email: "emma@school.edu", Name: "Emma"},
			profile: models.Profile{
				ID: "p-emma", UserID: "u-emma", Name: "Emma", Age: 20,
				Bio:       "Art history + film club. Looking for museum dates.",
				AvatarURL: "https://i.pravatar.cc/300?u=emma",
				Interests: []string{"film", "museums", "painting"},
			},
		},
	}

	for _, su := range seedUsers {
		u := su.user
		p := su.profile
		s.users[u.ID] = &u
		s.emails[u.Email] = u.ID
		s.profiles[u.ID] = &p
	}

	s.autoLikers = []string{"u-sarah", "u-emma"}

	// Sarah and Mike already matched a while ago and have a short
	// conversation going, so the dataset is not empty on first inspection.
	matched := s.now().Add(-48 * time.Hour).UTC()
	s.likes["u-sarah"] = map[string]bool{"u-mike": true}
	s.likes["u-mike"] = map[string]bool{"u-sarah": true}
	s.matches["m-sarah-mike"] = &models.Match{
		ID: "m-sarah-mike", UserA: "u-sarah", UserB: "u-mike", CreatedAt: matched,
	}
	s.unread["m-sarah-mike"] = make(map[string]int)
	s.messages["m-sarah-mike"] = []models.Message{
		{ID: "msg-seed-1", MatchID: "m-sarah-mike", SenderID: "u-mike",
			Content: "Pool rematch this weekend?", CreatedAt: matched.Add(time.Hour)},
		{ID: "msg-seed-2", MatchID: "m-sarah-mike", SenderID: "u-sarah",
			Content: "Only if you're ready to lose again", CreatedAt: matched.Add(2 * time.Hour)},
	}
}

// CannedReply returns a short reply attributed to userID, used by the
// simulated-replies mode.
func CannedReply(userID string) string {
	replies := map[string]string{
		"u-sarah": "Haha okay, but only if loser buys coffee",
		"u-mike":  "Nice! Have you tried the new place on 5th?",
		"u-emma":  "There's a Hopper exhibit opening Friday, interested?",
	}
	if r, ok := replies[userID]; ok {
		return r
	}
	return "Hey! :)"
}
