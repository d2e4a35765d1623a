package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"user-center/internal/cache"
	"user-center/internal/config"
	"user-center/internal/jobs"
	"user-center/internal/models"
	"user-center/internal/repository"
	"user-center/internal/scheduler"
	"user-center/internal/service"
	"user-center/internal/utils"
	"user-center/pkg/redis_limiter"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App 应用依赖
type App struct {
	Config      *config.Config
	Logger      *logrus.Logger
	DB          *gorm.DB
	Redis       *redis.Client
	UserService *service.UserService
	Scheduler   *scheduler.Scheduler
}

// NewApp 初始化数据库、Redis、服务与定时任务
func NewApp(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	if err := utils.InitValidator(); err != nil {
		return nil, fmt.Errorf("初始化验证器失败: %w", err)
	}

	db, err := OpenDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	redisClient, err := NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	return Assemble(cfg, logger, db, redisClient)
}

// Assemble 使用已有的连接组装应用
func Assemble(cfg *config.Config, logger *logrus.Logger, db *gorm.DB, redisClient *redis.Client) (*App, error) {
	userRepo := repository.NewUserRepository(db)
	pageCache := cache.NewPaginationCache(redisClient, cfg.Cache.RecommendKeyPrefix, cfg.Cache.GetRecommendTTL())
	userService := service.NewUserService(userRepo, pageCache, cfg.Security.Salt, logger)

	// 未开启定时刷新时只注册为手动任务
	schedule := ""
	if cfg.Recommend.Enabled {
		schedule = cfg.Recommend.Schedule
	}

	limiter := redis_limiter.NewRedisLimiter(redisClient, 1, "", cfg.Recommend.GetLockTTL(), logger)
	refreshJob := jobs.NewRecommendRefreshJob(
		userService,
		pageCache,
		limiter,
		schedule,
		cfg.Recommend.UserIDs,
		cfg.Recommend.PageSize,
		logger,
	)

	sched := scheduler.NewScheduler(logger)
	if err := sched.Register(refreshJob); err != nil {
		return nil, err
	}

	return &App{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		Redis:       redisClient,
		UserService: userService,
		Scheduler:   sched,
	}, nil
}

// Migrate 迁移数据库并初始化管理员
func (a *App) Migrate(ctx context.Context) error {
	if err := models.AutoMigrate(a.DB); err != nil {
		return fmt.Errorf("迁移数据库失败: %w", err)
	}
	if err := a.UserService.InitAdmin(ctx, a.Config.Admin.Account, a.Config.Admin.Password, a.Config.Admin.Username); err != nil {
		return fmt.Errorf("初始化管理员失败: %w", err)
	}
	return nil
}

// Close 关闭连接
func (a *App) Close() error {
	var errs []error
	if err := a.Redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("关闭Redis失败: %w", err))
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("关闭数据库失败: %w", err))
		}
	}
	return errors.Join(errs...)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
