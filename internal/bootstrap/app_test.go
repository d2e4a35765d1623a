package bootstrap

import (
	"context"
	"testing"

	"user-center/internal/config"
	"user-center/internal/jobs"
	"user-center/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleAndMigrate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	mr, client := testutil.NewTestRedis(t)

	cfg := &config.Config{
		Security: config.SecurityConfig{Salt: "yupi"},
		Admin:    config.AdminConfig{Account: "admin", Password: "adminpassword", Username: "管理员"},
		Cache:    config.CacheConfig{RecommendKeyPrefix: "test:recommend", RecommendTTL: 60},
		Recommend: config.RecommendConfig{
			Enabled:  false,
			Schedule: "59 58 23 * * *",
			UserIDs:  []int64{1},
			PageSize: 5,
			LockTTL:  60,
		},
	}

	app, err := Assemble(cfg, testutil.NewTestLogger(), db, client)
	require.NoError(t, err)
	assert.Equal(t, []string{jobs.RecommendRefreshJobName}, app.Scheduler.Jobs())

	require.NoError(t, app.Migrate(ctx))
	require.NoError(t, app.Migrate(ctx))

	require.NoError(t, app.Scheduler.RunByName(ctx, jobs.RecommendRefreshJobName))
	assert.True(t, mr.Exists("test:recommend:1"))
	assert.False(t, mr.Exists("recommend-refresh:1"))
}

func TestOpenDatabaseUnknownDriver(t *testing.T) {
	_, err := OpenDatabase(config.DatabaseConfig{Driver: "mysql"})
	assert.EqualError(t, err, "不支持的数据库类型: mysql")
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger := NewLogger(config.LogConfig{Level: "verbose", Format: "text"})
	assert.Equal(t, "info", logger.GetLevel().String())
}
