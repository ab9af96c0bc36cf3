package application_test

import (
	"context"
	"testing"
	"time"

	"book-recommender/src/application"
	"book-recommender/src/mocks"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// querySamples возвращает число наблюдений гистограммы по каждому виду запроса
func querySamples(t *testing.T, m *application.Metrics) map[string]uint64 {
	t.Helper()
	families, err := m.Registry.Gather()
	require.NoError(t, err)

	var family *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "store_query_duration_seconds" {
			family = f
		}
	}
	require.NotNil(t, family)
	assert.Equal(t, dto.MetricType_HISTOGRAM, family.GetType())

	out := make(map[string]uint64)
	for _, metric := range family.GetMetric() {
		for _, label := range metric.GetLabel() {
			if label.GetName() == "query" {
				out[label.GetValue()] = metric.GetHistogram().GetSampleCount()
			}
		}
	}
	return out
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *application.Metrics
	assert.NotPanics(t, func() {
		m.IncRequest("ok")
		m.IncSection("author", "rendered")
		m.ObserveQuery("title", time.Millisecond)
		m.IncCache(true)
	})
}

func TestStoreQueriesAreTimed(t *testing.T) {
	repo := mocks.NewMockCatalogRepository(library()...)
	rec, metrics := newRecommender(t, repo, newTable(t))
	ctx := context.Background()

	_, err := rec.SimilarBooks(ctx, "dune")
	require.NoError(t, err)
	_, err = rec.ByAuthor(ctx, "Tolkien")
	require.NoError(t, err)
	_, err = rec.CatalogSize(ctx)
	require.NoError(t, err)

	assert.Equal(t, map[string]uint64{
		"title":  1,
		"ids":    1,
		"author": 1,
		"count":  1,
	}, querySamples(t, metrics))
}
