package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"user-center/internal/cache"
	"user-center/internal/dto"
	"user-center/internal/models"
	"user-center/internal/repository"
	"user-center/pkg/redis_limiter"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls int
	mu    sync.Mutex
	err   error
	panic bool
}

func (s *fakeSource) PaginateUsers(ctx context.Context, pageNumber, pageSize int, filters ...repository.Filter) (*cache.UserPage, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.panic {
		panic("source exploded")
	}
	if s.err != nil {
		return nil, s.err
	}
	return dto.NewPagination([]models.SafetyUser{{ID: 1, UserAccount: "dogyupi"}}, 1, pageNumber, pageSize), nil
}

type fakeStore struct {
	mu     sync.Mutex
	pages  map[int64]*cache.UserPage
	failOn map[int64]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{pages: make(map[int64]*cache.UserPage), failOn: make(map[int64]bool)}
}

func (s *fakeStore) Set(ctx context.Context, userID int64, page *cache.UserPage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn[userID] {
		return fmt.Errorf("store unavailable for %d", userID)
	}
	s.pages[userID] = page
	return nil
}

type fakeLimiter struct {
	mu       sync.Mutex
	busy     map[string]bool
	acquired []string
	released []string
}

func (l *fakeLimiter) Acquire(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy[key] {
		return fmt.Errorf("%w: 1", redis_limiter.ErrLimitExceeded)
	}
	l.acquired = append(l.acquired, key)
	return nil
}

func (l *fakeLimiter) Release(ctx context.Context, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.released = append(l.released, key)
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRecommendRefreshWritesEveryUser(t *testing.T) {
	source := &fakeSource{}
	store := newFakeStore()
	limiter := &fakeLimiter{}
	job := NewRecommendRefreshJob(source, store, limiter, "59 58 23 * * *", []int64{1, 2, 3}, 20, discardLogger())

	require.NoError(t, job.Execute(context.Background()))

	assert.Equal(t, RecommendRefreshJobName, job.Name())
	assert.Equal(t, "59 58 23 * * *", job.Schedule())
	assert.Equal(t, 3, source.calls)
	require.Len(t, store.pages, 3)
	assert.Equal(t, 1, store.pages[2].Current)
	assert.Equal(t, 20, store.pages[2].Size)
	assert.ElementsMatch(t, []string{"recommend-refresh:1", "recommend-refresh:2", "recommend-refresh:3"}, limiter.acquired)
	assert.ElementsMatch(t, limiter.acquired, limiter.released)
}

func TestRecommendRefreshFailureDoesNotStopOthers(t *testing.T) {
	store := newFakeStore()
	store.failOn[2] = true
	job := NewRecommendRefreshJob(&fakeSource{}, store, nil, "", []int64{1, 2, 3}, 10, discardLogger())

	err := job.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "写入用户 2 推荐缓存失败")

	assert.Contains(t, store.pages, int64(1))
	assert.Contains(t, store.pages, int64(3))
	assert.NotContains(t, store.pages, int64(2))
}

func TestRecommendRefreshSkipsBusySlot(t *testing.T) {
	source := &fakeSource{}
	store := newFakeStore()
	limiter := &fakeLimiter{busy: map[string]bool{"recommend-refresh:1": true}}
	job := NewRecommendRefreshJob(source, store, limiter, "", []int64{1, 2}, 10, discardLogger())

	require.NoError(t, job.Execute(context.Background()))
	assert.Equal(t, 1, source.calls)
	assert.NotContains(t, store.pages, int64(1))
	assert.Contains(t, store.pages, int64(2))
	assert.Equal(t, []string{"recommend-refresh:2"}, limiter.released)
}

func TestRecommendRefreshRecoversPanic(t *testing.T) {
	source := &fakeSource{panic: true}
	limiter := &fakeLimiter{}
	job := NewRecommendRefreshJob(source, newFakeStore(), limiter, "", []int64{7}, 10, discardLogger())

	var err error
	assert.NotPanics(t, func() { err = job.Execute(context.Background()) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source exploded")
	assert.Equal(t, []string{"recommend-refresh:7"}, limiter.released)
}

func TestRecommendRefreshSourceError(t *testing.T) {
	source := &fakeSource{err: errors.New("db down")}
	job := NewRecommendRefreshJob(source, newFakeStore(), nil, "", []int64{1, 2}, 10, discardLogger())

	err := job.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "计算用户 1 推荐数据失败")
	assert.Contains(t, err.Error(), "计算用户 2 推荐数据失败")
}
