package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 可以只通过环境变量提供的配置项
var envOnlyKeys = []string{
	"security.salt",
	"session.secret",
	"admin.password",
	"redis_service.password",
	"database.dsn",
}

// LoadConfig 加载配置文件
//
// 环境变量优先于配置文件, 例如 SECURITY_SALT 覆盖 security.salt.
// 启动时会按 APP_ENV 加载 .env.dev 或 .env.prod (文件不存在时忽略)
func LoadConfig(configFile string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	// 设置配置文件路径
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// 默认查找 config.yaml
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// 读取环境变量
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envOnlyKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("绑定环境变量失败: %w", err)
		}
	}

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析配置
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 设置默认值
	setDefaults(&cfg)

	// 验证配置
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile 加载 .env.<APP_ENV>, 已存在的环境变量不会被覆盖
func loadEnvFile() error {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	err := godotenv.Load(".env." + env)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("加载环境变量文件失败: %w", err)
	}
	return nil
}

// setDefaults 设置默认值
func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	cfg.Server.ContextPath = strings.TrimRight(cfg.Server.ContextPath, "/")
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.Driver == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "./database/user_center.db"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "session"
	}
	if cfg.Session.MaxAge == 0 {
		cfg.Session.MaxAge = 86400 * 7 // 7天
	}
	if cfg.Session.PoolSize == 0 {
		cfg.Session.PoolSize = 10
	}
	if cfg.Admin.Account == "" {
		cfg.Admin.Account = "admin"
	}
	if cfg.CORS.AllowMethods == nil {
		cfg.CORS.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if cfg.CORS.AllowHeaders == nil {
		cfg.CORS.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	}
	if cfg.Cache.RecommendKeyPrefix == "" {
		cfg.Cache.RecommendKeyPrefix = "compare-friends:user:recommend"
	}
	if cfg.Cache.RecommendTTL == 0 {
		cfg.Cache.RecommendTTL = 86400 // 1天
	}
	if cfg.Recommend.Schedule == "" {
		cfg.Recommend.Schedule = "59 58 23 * * *"
	}
	if cfg.Recommend.UserIDs == nil {
		cfg.Recommend.UserIDs = []int64{1}
	}
	if cfg.Recommend.PageSize == 0 {
		cfg.Recommend.PageSize = 20
	}
	if cfg.Recommend.LockTTL == 0 {
		cfg.Recommend.LockTTL = 300
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// validateConfig 验证配置
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务器端口: %d", cfg.Server.Port)
	}

	if cfg.Security.Salt == "" {
		return fmt.Errorf("密码盐值不能为空")
	}

	if cfg.Session.Secret == "" {
		return fmt.Errorf("会话密钥不能为空")
	}

	if cfg.Admin.Password == "" {
		return fmt.Errorf("管理员密码不能为空")
	}

	if cfg.Recommend.PageSize <= 0 {
		return fmt.Errorf("无效的推荐分页大小: %d", cfg.Recommend.PageSize)
	}

	switch cfg.Database.Driver {
	case "sqlite":
		// 检查数据库目录是否存在
		dbDir := filepath.Dir(cfg.Database.Path)
		if _, err := os.Stat(dbDir); os.IsNotExist(err) {
			if err := os.MkdirAll(dbDir, 0755); err != nil {
				return fmt.Errorf("创建数据库目录失败: %w", err)
			}
		}
	case "postgres":
		if cfg.Database.DSN == "" {
			return fmt.Errorf("数据库连接串不能为空")
		}
	default:
		return fmt.Errorf("不支持的数据库类型: %s", cfg.Database.Driver)
	}

	return nil
}
