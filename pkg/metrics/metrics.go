package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal HTTP 请求数
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_center_http_requests_total",
			Help: "HTTP 请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP 请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_center_http_request_duration_seconds",
			Help:    "HTTP 请求耗时(秒)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// CacheRequests 推荐缓存读取结果 hit / miss / error
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_center_recommend_cache_requests_total",
			Help: "推荐缓存读取次数",
		},
		[]string{"result"},
	)

	// JobRuns 定时任务执行结果
	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_center_job_runs_total",
			Help: "定时任务执行次数",
		},
		[]string{"job", "status"},
	)

	// RefreshedIdentities 推荐缓存刷新结果 success / failed / skipped
	RefreshedIdentities = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_center_recommend_refresh_total",
			Help: "推荐缓存刷新的用户数",
		},
		[]string{"status"},
	)
)

// RecordHTTPRequest 记录 HTTP 请求
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordJobRun 记录任务执行
func RecordJobRun(job string, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	JobRuns.WithLabelValues(job, status).Inc()
}
