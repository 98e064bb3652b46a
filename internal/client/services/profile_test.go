package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinshipapp/kinship/internal/client/cache"
	"github.com/kinshipapp/kinship/internal/common"
	"github.com/kinshipapp/kinship/internal/models"
)

func TestProfileService_GetCachesByUser(t *testing.T) {
	client := &fakeClient{ProfileRet: &models.Profile{ID: "pr1", UserID: "u1", Name: "Sarah"}}
	c := cache.New()
	svc := NewProfileService(client, c, 2*time.Minute)

	first, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Sarah", first.Name)

	cached, ok := cache.Cached[*models.Profile](c, profileKey("u1"))
	require.True(t, ok)
	assert.Equal(t, first, cached)
}

func TestProfileService_UpdateReplacesCacheAndInvalidatesViews(t *testing.T) {
	client := &fakeClient{UpdateRet: &models.Profile{ID: "pr1", UserID: "u1", Name: "Sarah", Bio: "new bio"}}
	c := cache.New()
	svc := NewProfileService(client, c, 2*time.Minute)

	c.Set(feedKey(), []models.Profile{{ID: "p1"}}, time.Minute)
	c.Set(matchesKey(), []models.MatchSummary{}, time.Minute)

	updated, err := svc.Update(context.Background(), models.ProfileUpdate{Bio: "new bio"})
	require.NoError(t, err)
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, "new bio", client.LastUpdate.Bio)

	cached, ok := cache.Cached[*models.Profile](c, profileKey("u1"))
	require.True(t, ok)
	assert.Equal(t, "new bio", cached.Bio)

	assert.True(t, c.IsStale(feedKey()), "profile changes surface in the feed")
	assert.True(t, c.IsStale(matchesKey()), "profile changes surface in match previews")
}

func TestProfileService_UpdateFailureLeavesCacheUntouched(t *testing.T) {
	client := &fakeClient{UpdateErr: common.ErrExternalCall}
	c := cache.New()
	svc := NewProfileService(client, c, 2*time.Minute)

	c.Set(profileKey("u1"), &models.Profile{UserID: "u1", Bio: "old"}, time.Minute)

	_, err := svc.Update(context.Background(), models.ProfileUpdate{Bio: "new"})
	require.ErrorIs(t, err, common.ErrExternalCall)

	cached, ok := cache.Cached[*models.Profile](c, profileKey("u1"))
	require.True(t, ok)
	assert.Equal(t, "old", cached.Bio)
	assert.False(t, c.IsStale(profileKey("u1")))
}

func TestMatchesService_ListCachesResult(t *testing.T) {
	client := &fakeClient{MatchesRet: []models.MatchSummary{
		{Match: models.Match{ID: "m1"}, OtherUser: &models.User{Name: "Mike"}},
	}}
	c := cache.New()
	svc := NewMatchesService(client, c, 30*time.Second)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, client.MatchesCalls)
}
