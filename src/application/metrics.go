package application

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса рекомендаций. Все методы допускают nil-получатель.
type Metrics struct {
	Registry      *prometheus.Registry
	RequestsTotal *prometheus.CounterVec
	SectionsTotal *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
	CacheTotal    *prometheus.CounterVec
}

// NewMetrics создает метрики на отдельном реестре
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total recommendation requests by outcome.",
		},
		[]string{"outcome"},
	)
	sections := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_sections_total",
			Help: "Recommendation sections by kind and result.",
		},
		[]string{"kind", "result"},
	)
	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_query_duration_seconds",
			Help:    "Catalog store query latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)
	cache := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similarity_cache_total",
			Help: "Ranked neighbour cache lookups by result.",
		},
		[]string{"result"},
	)

	registry.MustRegister(requests, sections, queryDuration, cache)

	return &Metrics{
		Registry:      registry,
		RequestsTotal: requests,
		SectionsTotal: sections,
		QueryDuration: queryDuration,
		CacheTotal:    cache,
	}
}

// IncRequest увеличивает счетчик запросов
func (m *Metrics) IncRequest(outcome string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(outcome).Inc()
}

// IncSection учитывает результат обработки секции
func (m *Metrics) IncSection(kind, result string) {
	if m == nil {
		return
	}
	m.SectionsTotal.WithLabelValues(kind, result).Inc()
}

// ObserveQuery записывает длительность запроса к каталогу
func (m *Metrics) ObserveQuery(query string, d time.Duration) {
	if m == nil {
		return
	}
	m.QueryDuration.WithLabelValues(query).Observe(d.Seconds())
}

// IncCache учитывает попадание или промах кэша
func (m *Metrics) IncCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheTotal.WithLabelValues(result).Inc()
}
