// Package metrics 提供Prometheus指标采集
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "webmatic"

var (
	// HTTPRequestsTotal HTTP请求总数
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP请求耗时分布",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// GenerationTotal 生成流程总数,按阶段/模式/结果统计
	GenerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_total",
			Help:      "生成流程总数",
		},
		[]string{"stage", "mode", "result"},
	)

	// GenerationDuration 生成流程耗时
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "生成流程耗时分布",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 45, 60},
		},
		[]string{"stage", "provider"},
	)

	// LLMCallsTotal 模型调用总数
	LLMCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_calls_total",
			Help:      "模型调用总数",
		},
		[]string{"provider", "model", "result"},
	)

	// QualityScore 方案质量评分分布
	QualityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_quality_score",
			Help:      "方案质量评分分布",
			Buckets:   []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	// CompareRunsTotal 对比流程总数
	CompareRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compare_runs_total",
			Help:      "对比流程总数",
		},
		[]string{"result"},
	)

	// CacheHitsTotal 缓存命中计数
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "缓存命中计数",
		},
		[]string{"cache", "result"},
	)
)
