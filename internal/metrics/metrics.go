// Package metrics 维护进程生命周期内的请求统计
// 计数器用原子操作更新，高并发下只要求最终准确，不要求线性一致
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 请求统计，进程重启后归零，不落盘
type Metrics struct {
	startedAt time.Time

	totalRequests  atomic.Int64
	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
	totalTokens    atomic.Int64
	totalLatencyMS atomic.Int64

	registry     *prometheus.Registry
	promRequests *prometheus.CounterVec
	promTokens   prometheus.Counter
	promLatency  prometheus.Histogram
}

// Snapshot 统计快照
type Snapshot struct {
	UptimeSeconds float64 `json:"uptime_seconds"`
	TotalRequests int64   `json:"total_requests"`
	CacheHits     int64   `json:"cache_hits"`
	CacheMisses   int64   `json:"cache_misses"`
	HitRate       float64 `json:"hit_rate"`
	TotalTokens   int64   `json:"total_tokens"`
	AvgLatencyMS  float64 `json:"avg_latency_ms"`
}

// New 创建统计器并注册 prometheus 指标
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		startedAt: time.Now(),
		registry:  registry,
		promRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_chat_requests_total",
			Help: "Chat requests by cache outcome.",
		}, []string{"cache"}),
		promTokens: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_generation_tokens_total",
			Help: "Cumulative tokens reported by the generation backend.",
		}),
		promLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "portal_chat_latency_seconds",
			Help:    "Chat request latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(m.promRequests, m.promTokens, m.promLatency)
	return m
}

// Registry 暴露给 /metrics 端点
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHit 记录一次缓存命中请求
func (m *Metrics) RecordHit(tokens int, latency time.Duration) {
	m.record(true, tokens, latency)
}

// RecordMiss 记录一次缓存未命中请求
func (m *Metrics) RecordMiss(tokens int, latency time.Duration) {
	m.record(false, tokens, latency)
}

func (m *Metrics) record(hit bool, tokens int, latency time.Duration) {
	m.totalRequests.Add(1)
	if hit {
		m.cacheHits.Add(1)
		m.promRequests.WithLabelValues("hit").Inc()
	} else {
		m.cacheMisses.Add(1)
		m.promRequests.WithLabelValues("miss").Inc()
	}
	m.totalTokens.Add(int64(tokens))
	m.totalLatencyMS.Add(latency.Milliseconds())

	m.promTokens.Add(float64(tokens))
	m.promLatency.Observe(latency.Seconds())
}

// Snapshot 取当前统计快照
func (m *Metrics) Snapshot() Snapshot {
	total := m.totalRequests.Load()
	hits := m.cacheHits.Load()

	s := Snapshot{
		UptimeSeconds: time.Since(m.startedAt).Seconds(),
		TotalRequests: total,
		CacheHits:     hits,
		CacheMisses:   m.cacheMisses.Load(),
		TotalTokens:   m.totalTokens.Load(),
	}
	if total > 0 {
		s.HitRate = float64(hits) / float64(total)
		s.AvgLatencyMS = float64(m.totalLatencyMS.Load()) / float64(total)
	}
	return s
}
