// Package models defines the wire and domain types shared by the Kinship
// client and the mock backend.
package models

import "time"

// User is the identity record returned by the auth endpoints and persisted
// by the client between runs.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// Profile is the public dating profile attached to a user. Avatar and photos
// are URLs only; blob storage is out of scope.
type Profile struct {
	ID        string   `json:"id"`
	UserID    string   `json:"user_id"`
	Name      string   `json:"name"`
	Bio       string   `json:"bio,omitempty"`
	AvatarURL string   `json:"avatar_url,omitempty"`
	Age       int      `json:"age,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

// Match links two users once both have liked each other.
type Match struct {
	ID        string    `json:"id"`
	UserA     string    `json:"user_a"`
	UserB     string    `json:"user_b"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchSummary is the match-list projection: the match itself plus the other
// participant and a last-message preview.
type MatchSummary struct {
	Match
	OtherUser   *User    `json:"other_user,omitempty"`
	LastMessage *Message `json:"last_message,omitempty"`
	Unread      int      `json:"unread"`
}

// Message is a single chat message within a match. Ordering within a
// conversation is always derived from CreatedAt, never from arrival order.
type Message struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult is the payload returned by a successful OTP confirmation.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// LikeResult reports the outcome of liking a profile.
type LikeResult struct {
	ProfileID string `json:"profile_id"`
	Matched   bool   `json:"matched"`
	MatchID   string `json:"match_id,omitempty"`
}

// ProfileUpdate carries the fields a user may change on their own profile.
// Zero values mean "leave unchanged".
type ProfileUpdate struct {
	Name      string   `json:"name,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	AvatarURL string   `json:"avatar_url,omitempty"`
	Age       int      `json:"age,omitempty"`
	Interests []string `json:"interests,omitempty"`
}
