// Package notify is the fire-and-forget alert side-channel. Services publish
// match/message/like events; the UI subscribes and renders them however it
// likes. Delivery is best-effort and not part of core correctness.
package notify

import (
	evbus "github.com/asaskevich/EventBus"

	"github.com/kinshipapp/kinship/internal/models"
)

// Event topics.
const (
	TopicMatch   = "notify:match"
	TopicMessage = "notify:message"
	TopicLike    = "notify:like"
)

// Event is a single alert payload.
type Event struct {
	Title   string
	Body    string
	MatchID string
	UserID  string
}

// Notifier wraps the event bus with typed publish/subscribe helpers. One
// instance is constructed at the composition root and shared by reference.
type Notifier struct {
	bus evbus.Bus
}

func New() *Notifier {
	return &Notifier{bus: evbus.New()}
}

// PublishMatch announces a new mutual match.
func (n *Notifier) PublishMatch(otherName, matchID string) {
	n.bus.Publish(TopicMatch, Event{
		Title:   "It's a match!",
		Body:    "You and " + otherName + " liked each other",
		MatchID: matchID,
	})
}

// PublishMessage announces an incoming chat message.
func (n *Notifier) PublishMessage(senderName, matchID, preview string) {
	n.bus.Publish(TopicMessage, Event{
		Title:   "New message from " + senderName,
		Body:    preview,
		MatchID: matchID,
	})
}

// PublishLike announces that someone liked the current user.
func (n *Notifier) PublishLike(user *models.User) {
	e := Event{Title: "Someone likes you", Body: "Open the app to find out who"}
	if user != nil {
		e.UserID = user.ID
	}
	n.bus.Publish(TopicLike, e)
}

// Subscribe registers fn for the given topic. The handler runs synchronously
// on the publisher's goroutine; keep it cheap.
func (n *Notifier) Subscribe(topic string, fn func(Event)) error {
	return n.bus.Subscribe(topic, fn)
}

// Unsubscribe removes a previously registered handler.
func (n *Notifier) Unsubscribe(topic string, fn func(Event)) error {
	return n.bus.Unsubscribe(topic, fn)
}
