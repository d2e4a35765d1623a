package testutil

import (
	"io"
	"testing"

	"user-center/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB 创建已迁移的内存数据库, 每个测试独立
//
// 只保留一个连接, 并发访问会被串行化
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// NewTestRedis 启动 miniredis 并返回客户端
func NewTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

// NewTestLogger 丢弃输出的日志
func NewTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// MemorySession 测试用会话
type MemorySession struct {
	Values    map[interface{}]interface{}
	SaveCount int
	SaveErr   error
}

// NewMemorySession 创建空会话
func NewMemorySession() *MemorySession {
	return &MemorySession{Values: make(map[interface{}]interface{})}
}

func (s *MemorySession) Get(key interface{}) interface{} { return s.Values[key] }

func (s *MemorySession) Set(key interface{}, val interface{}) { s.Values[key] = val }

func (s *MemorySession) Delete(key interface{}) { delete(s.Values, key) }

func (s *MemorySession) Clear() {
	for key := range s.Values {
		delete(s.Values, key)
	}
}

func (s *MemorySession) Save() error {
	s.SaveCount++
	return s.SaveErr
}
