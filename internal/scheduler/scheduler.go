package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"user-center/pkg/metrics"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job 定时任务
type Job interface {
	Name() string
	// Schedule 返回带秒字段的 cron 表达式, 为空表示只能手动触发
	Schedule() string
	Execute(ctx context.Context) error
}

// Scheduler 定时任务调度器
type Scheduler struct {
	cron   *cron.Cron
	logger *logrus.Logger

	mu   sync.RWMutex
	jobs []Job
}

// NewScheduler 创建调度器
func NewScheduler(logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
		jobs:   make([]Job, 0),
	}
}

// Register 注册任务, 有 cron 表达式的任务会被自动调度
func (s *Scheduler) Register(job Job) error {
	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()

	entry := s.logger.WithField("job", job.Name())

	schedule := job.Schedule()
	if schedule == "" {
		entry.Info("注册手动任务")
		return nil
	}

	if _, err := s.cron.AddFunc(schedule, func() { s.run(context.Background(), job) }); err != nil {
		return fmt.Errorf("调度任务 %s 失败: %w", job.Name(), err)
	}
	entry.WithField("schedule", schedule).Info("注册定时任务")
	return nil
}

func (s *Scheduler) run(ctx context.Context, job Job) error {
	entry := s.logger.WithField("job", job.Name())
	entry.Info("任务开始执行")

	start := time.Now()
	err := job.Execute(ctx)
	metrics.RecordJobRun(job.Name(), err)

	entry = entry.WithField("latency", time.Since(start))
	if err != nil {
		entry.WithError(err).Error("任务执行失败")
	} else {
		entry.Info("任务执行完成")
	}
	return err
}

// Start 启动调度器
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.WithField("jobs", len(s.Jobs())).Info("调度器已启动")
}

// Stop 停止调度器并等待正在执行的任务结束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("调度器已停止")
}

// RunByName 手动执行任务
func (s *Scheduler) RunByName(ctx context.Context, name string) error {
	job := s.find(name)
	if job == nil {
		return fmt.Errorf("任务不存在: %s", name)
	}
	return s.run(ctx, job)
}

func (s *Scheduler) find(name string) Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, job := range s.jobs {
		if job.Name() == name {
			return job
		}
	}
	return nil
}

// Jobs 已注册的任务名
func (s *Scheduler) Jobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.jobs))
	for i, job := range s.jobs {
		names[i] = job.Name()
	}
	return names
}
