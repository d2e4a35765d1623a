package config

import (
	"fmt"
	"time"
)

// Config 应用配置结构
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis_service"`
	Session   SessionConfig   `mapstructure:"session"`
	Security  SecurityConfig  `mapstructure:"security"`
	Admin     AdminConfig     `mapstructure:"admin"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	ContextPath    string `mapstructure:"context_path"`
	ProductionMode bool   `mapstructure:"production_mode"`
}

// GetAddress 获取服务器地址
func (s *ServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig 数据库配置
//
// driver 为 sqlite 时使用 path, 为 postgres 时使用 dsn
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	DB       int    `mapstructure:"db"`
	Password string `mapstructure:"password"`
}

// GetAddress 获取Redis地址
func (r *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// SessionConfig 会话配置
type SessionConfig struct {
	CookieName string `mapstructure:"cookie_name"`
	Secret     string `mapstructure:"secret"`
	MaxAge     int    `mapstructure:"max_age"` // 秒
	Secure     bool   `mapstructure:"secure"`
	PoolSize   int    `mapstructure:"pool_size"`
}

// GetMaxAge 获取会话有效期
func (s *SessionConfig) GetMaxAge() time.Duration {
	return time.Duration(s.MaxAge) * time.Second
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	Salt string `mapstructure:"salt"`
}

// AdminConfig 管理员配置
type AdminConfig struct {
	Account  string `mapstructure:"account"`
	Password string `mapstructure:"password"`
	Username string `mapstructure:"username"`
}

// CORSConfig CORS配置
type CORSConfig struct {
	Origins          []string `mapstructure:"origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
}

// CacheConfig 推荐缓存配置
type CacheConfig struct {
	RecommendKeyPrefix string `mapstructure:"recommend_key_prefix"`
	RecommendTTL       int    `mapstructure:"recommend_ttl"` // 秒
}

// GetRecommendTTL 获取推荐缓存过期时间
func (c *CacheConfig) GetRecommendTTL() time.Duration {
	return time.Duration(c.RecommendTTL) * time.Second
}

// RecommendConfig 推荐缓存预热任务配置
type RecommendConfig struct {
	Enabled  bool    `mapstructure:"enabled"`
	Schedule string  `mapstructure:"schedule"`
	UserIDs  []int64 `mapstructure:"user_ids"`
	PageSize int     `mapstructure:"page_size"`
	LockTTL  int     `mapstructure:"lock_ttl"` // 秒
}

// GetLockTTL 获取刷新锁过期时间
func (r *RecommendConfig) GetLockTTL() time.Duration {
	return time.Duration(r.LockTTL) * time.Second
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | text
}
