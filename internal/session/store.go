package session

import (
	"fmt"
	"net/http"

	"user-center/internal/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-contrib/sessions/redis"
)

// NewStore 创建 Redis 会话存储
func NewStore(cfg *config.Config) (sessions.Store, error) {
	store, err := redis.NewStoreWithDB(
		cfg.Session.PoolSize,
		"tcp",
		cfg.Redis.GetAddress(),
		cfg.Redis.Password,
		fmt.Sprintf("%d", cfg.Redis.DB),
		[]byte(cfg.Session.Secret),
	)
	if err != nil {
		return nil, fmt.Errorf("创建会话存储失败: %w", err)
	}
	store.Options(Options(cfg))
	return store, nil
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore(cfg *config.Config) sessions.Store {
	store := memstore.NewStore([]byte(cfg.Session.Secret))
	store.Options(Options(cfg))
	return store
}

// Options 会话 Cookie 选项
func Options(cfg *config.Config) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.GetMaxAge().Seconds()),
		Secure:   cfg.Session.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
