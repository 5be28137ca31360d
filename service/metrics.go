package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 是服务的 Prometheus 指标集合。
type Metrics struct {
	trainRuns        *prometheus.CounterVec
	trainDuration    prometheus.Histogram
	recommendTotal   prometheus.Counter
	recommendEmpty   prometheus.Counter
	recommendLatency prometheus.Histogram
}

// NewMetrics 创建并注册指标。reg 为 nil 时只创建不注册（测试用）。
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		trainRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shoprec",
			Name:      "train_runs_total",
			Help:      "Completed training runs by outcome.",
		}, []string{"outcome"}),
		trainDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shoprec",
			Name:      "train_duration_seconds",
			Help:      "Wall time of a full training run.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		recommendTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shoprec",
			Name:      "recommend_requests_total",
			Help:      "Recommendation queries served.",
		}),
		recommendEmpty: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shoprec",
			Name:      "recommend_empty_total",
			Help:      "Recommendation queries that returned an empty list.",
		}),
		recommendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shoprec",
			Name:      "recommend_duration_seconds",
			Help:      "Latency of recommendation queries.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.trainRuns,
			m.trainDuration,
			m.recommendTotal,
			m.recommendEmpty,
			m.recommendLatency,
		)
	}
	return m
}

func (m *Metrics) ObserveTrain(elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.trainRuns.WithLabelValues(outcome).Inc()
	m.trainDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRecommend(elapsed time.Duration, resultCount int) {
	m.recommendTotal.Inc()
	if resultCount == 0 {
		m.recommendEmpty.Inc()
	}
	m.recommendLatency.Observe(elapsed.Seconds())
}
