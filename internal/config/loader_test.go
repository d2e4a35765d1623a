package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "user_center.db")
	path := writeConfig(t, `
database:
  path: `+dbPath+`
session:
  secret: test-secret
security:
  salt: yupi
admin:
  password: adminpassword
server:
  context_path: /api/
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.GetAddress())
	assert.Equal(t, "/api", cfg.Server.ContextPath)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.GetAddress())
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.GetMaxAge())
	assert.Equal(t, "admin", cfg.Admin.Account)
	assert.Equal(t, "compare-friends:user:recommend", cfg.Cache.RecommendKeyPrefix)
	assert.Equal(t, 24*time.Hour, cfg.Cache.GetRecommendTTL())
	assert.Equal(t, "59 58 23 * * *", cfg.Recommend.Schedule)
	assert.Equal(t, []int64{1}, cfg.Recommend.UserIDs)
	assert.Equal(t, 20, cfg.Recommend.PageSize)
	assert.Equal(t, 5*time.Minute, cfg.Recommend.GetLockTTL())
	assert.Equal(t, "info", cfg.Log.Level)

	// sqlite 数据库目录会被自动创建
	assert.DirExists(t, filepath.Dir(dbPath))
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, `
database:
  path: `+filepath.Join(t.TempDir(), "user_center.db")+`
session:
  secret: test-secret
security:
  salt: from-file
recommend:
  user_ids: [3, 5]
`)
	t.Setenv("SECURITY_SALT", "from-env")
	t.Setenv("ADMIN_PASSWORD", "env-admin-password")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Security.Salt)
	assert.Equal(t, "env-admin-password", cfg.Admin.Password)
	assert.Equal(t, []int64{3, 5}, cfg.Recommend.UserIDs)
}

func TestLoadConfigValidation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "user_center.db")
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing salt",
			content: `
session: {secret: s}
admin: {password: p}
database: {path: ` + dbPath + `}
`,
			wantErr: "密码盐值不能为空",
		},
		{
			name: "missing session secret",
			content: `
security: {salt: s}
admin: {password: p}
database: {path: ` + dbPath + `}
`,
			wantErr: "会话密钥不能为空",
		},
		{
			name: "invalid port",
			content: `
server: {port: 70000}
security: {salt: s}
session: {secret: s}
admin: {password: p}
`,
			wantErr: "无效的服务器端口: 70000",
		},
		{
			name: "postgres without dsn",
			content: `
security: {salt: s}
session: {secret: s}
admin: {password: p}
database: {driver: postgres}
`,
			wantErr: "数据库连接串不能为空",
		},
		{
			name: "unknown driver",
			content: `
security: {salt: s}
session: {secret: s}
admin: {password: p}
database: {driver: mysql}
`,
			wantErr: "不支持的数据库类型: mysql",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "读取配置文件失败")
}
