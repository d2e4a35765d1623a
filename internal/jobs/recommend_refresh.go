package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"user-center/internal/cache"
	"user-center/internal/repository"
	"user-center/pkg/metrics"
	"user-center/pkg/redis_limiter"

	"github.com/sirupsen/logrus"
)

// RecommendRefreshJobName 推荐缓存预热任务名
const RecommendRefreshJobName = "recommend-refresh"

// PageSource 分页数据来源
type PageSource interface {
	PaginateUsers(ctx context.Context, pageNumber, pageSize int, filters ...repository.Filter) (*cache.UserPage, error)
}

// PageStore 分页缓存
type PageStore interface {
	Set(ctx context.Context, userID int64, page *cache.UserPage) error
}

// SlotLimiter 跨实例的执行槽位
type SlotLimiter interface {
	Acquire(ctx context.Context, key string) error
	Release(ctx context.Context, key string)
}

// RecommendRefreshJob 推荐用户缓存预热
//
// 为每个配置的用户重新计算第一页推荐数据并写入缓存, 各用户之间互不影响
type RecommendRefreshJob struct {
	source   PageSource
	store    PageStore
	limiter  SlotLimiter
	schedule string
	userIDs  []int64
	pageSize int
	logger   *logrus.Logger
}

// NewRecommendRefreshJob 创建预热任务, limiter 为 nil 时不做跨实例去重
func NewRecommendRefreshJob(source PageSource, store PageStore, limiter SlotLimiter, schedule string, userIDs []int64, pageSize int, logger *logrus.Logger) *RecommendRefreshJob {
	return &RecommendRefreshJob{
		source:   source,
		store:    store,
		limiter:  limiter,
		schedule: schedule,
		userIDs:  userIDs,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Name 任务名
func (j *RecommendRefreshJob) Name() string {
	return RecommendRefreshJobName
}

// Schedule cron 表达式
func (j *RecommendRefreshJob) Schedule() string {
	return j.schedule
}

// Execute 刷新全部用户的推荐缓存, 返回合并后的错误
func (j *RecommendRefreshJob) Execute(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, userID := range j.userIDs {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			if err := j.refreshSafely(ctx, userID); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(userID)
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (j *RecommendRefreshJob) refreshSafely(ctx context.Context, userID int64) (err error) {
	entry := j.logger.WithField("user_id", userID)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("刷新用户 %d 推荐缓存时发生异常: %v", userID, r)
		}
		if err != nil {
			metrics.RefreshedIdentities.WithLabelValues("failed").Inc()
			entry.WithError(err).Error("推荐缓存刷新失败")
		}
	}()

	refreshed, err := j.refresh(ctx, userID)
	if err != nil {
		return err
	}
	if !refreshed {
		metrics.RefreshedIdentities.WithLabelValues("skipped").Inc()
		entry.Info("其他实例正在刷新, 跳过")
		return nil
	}

	metrics.RefreshedIdentities.WithLabelValues("success").Inc()
	entry.Info("推荐缓存刷新完成")
	return nil
}

// refresh 刷新单个用户, 槽位被占用时返回 false
func (j *RecommendRefreshJob) refresh(ctx context.Context, userID int64) (bool, error) {
	if j.limiter != nil {
		key := fmt.Sprintf("%s:%d", RecommendRefreshJobName, userID)
		if err := j.limiter.Acquire(ctx, key); err != nil {
			if errors.Is(err, redis_limiter.ErrLimitExceeded) {
				return false, nil
			}
			return false, fmt.Errorf("获取刷新槽位失败: %w", err)
		}
		defer j.limiter.Release(ctx, key)
	}

	page, err := j.source.PaginateUsers(ctx, 1, j.pageSize)
	if err != nil {
		return false, fmt.Errorf("计算用户 %d 推荐数据失败: %w", userID, err)
	}
	if err := j.store.Set(ctx, userID, page); err != nil {
		return false, fmt.Errorf("写入用户 %d 推荐缓存失败: %w", userID, err)
	}
	return true, nil
}
