// Package services implements the client's data services: discovery feed,
// match list, chat, and profile. Each service pairs the API client with the
// shared query cache and applies the per-operation synchronization policy,
// optimistic where latency matters and invalidation-based otherwise.
package services

import "github.com/kinshipapp/kinship/internal/client/cache"

func feedKey() cache.Key {
	return cache.Key{"discover", "feed"}
}

func matchesKey() cache.Key {
	return cache.Key{"matches"}
}

func messagesKey(matchID string) cache.Key {
	return cache.Key{"chat", "messages", matchID}
}

func profileKey(userID string) cache.Key {
	return cache.Key{"profile", userID}
}
