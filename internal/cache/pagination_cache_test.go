package cache

import (
	"context"
	"testing"
	"time"

	"user-center/internal/dto"
	"user-center/internal/models"
	"user-center/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, client := testutil.NewTestRedis(t)
	c := NewPaginationCache(client, "", 0)

	_, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	username := "yupi"
	page := dto.NewPagination([]models.SafetyUser{
		{ID: 1, UserAccount: "yupi01", Username: &username, CreateTime: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)},
		{ID: 2, UserAccount: "yupi02", UserRole: models.AdminRole},
	}, 12, 1, 2)
	require.NoError(t, c.Set(ctx, 1, page))

	assert.True(t, mr.Exists("compare-friends:user:recommend:1"))
	assert.Equal(t, DefaultTTL, mr.TTL("compare-friends:user:recommend:1"))

	cached, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, page.Total, cached.Total)
	assert.EqualValues(t, 6, cached.Pages)
	assert.Equal(t, page.Records[0].UserAccount, cached.Records[0].UserAccount)
	assert.Equal(t, "yupi", *cached.Records[0].Username)
	assert.True(t, page.Records[0].CreateTime.Equal(cached.Records[0].CreateTime))
	assert.True(t, cached.Records[1].IsAdmin())

	// 其他用户的缓存互不影响
	_, ok, err = c.Get(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPaginationCacheExpires(t *testing.T) {
	ctx := context.Background()
	mr, client := testutil.NewTestRedis(t)
	c := NewPaginationCache(client, "test:recommend", time.Minute)

	require.NoError(t, c.Set(ctx, 7, dto.NewPagination[models.SafetyUser](nil, 0, 1, 20)))
	assert.Equal(t, "test:recommend:7", c.Key(7))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPaginationCacheCorruptValue(t *testing.T) {
	ctx := context.Background()
	mr, client := testutil.NewTestRedis(t)
	c := NewPaginationCache(client, "", 0)

	require.NoError(t, mr.Set(c.Key(3), "not json"))

	_, _, err := c.Get(ctx, 3)
	assert.Error(t, err)
}
