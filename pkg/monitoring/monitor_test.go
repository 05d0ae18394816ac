package monitoring

import (
	"sync"
	"testing"

	"intent-search-be/pkg/pipeline"

	"github.com/stretchr/testify/assert"
)

func TestLogSearchAggregates(t *testing.T) {
	m := NewSearchSystemMonitor()

	m.LogSearch(pipeline.IntentProductDiscovery, 1.0, false)
	m.LogSearch(pipeline.IntentProductDiscovery, 3.0, true)
	m.LogSearch(pipeline.IntentPriceBased, 2.0, false)

	health := m.GetSystemHealth()

	assert.Equal(t, int64(3), health["queries_processed"])
	assert.InDelta(t, 1.0/3.0, health["error_rate"].(float64), 1e-9)
	assert.InDelta(t, 2.0, health["avg_response_time"].(float64), 1e-9)

	dist := health["intent_distribution"].(map[string]int64)
	assert.Equal(t, int64(2), dist[pipeline.IntentProductDiscovery])
	assert.Equal(t, int64(1), dist[pipeline.IntentPriceBased])

	perf := health["performance_by_intent"].(map[string]IntentPerformance)
	discovery := perf[pipeline.IntentProductDiscovery]
	assert.Equal(t, int64(2), discovery.Count)
	assert.InDelta(t, 2.0, discovery.AvgTime, 1e-9)
	assert.InDelta(t, 0.5, discovery.ErrorRate, 1e-9)

	// Known intents are pre-seeded even with zero traffic
	assert.Contains(t, perf, pipeline.IntentComparison)
	assert.Equal(t, int64(0), perf[pipeline.IntentComparison].Count)
}

func TestLogSearchUnknownIntent(t *testing.T) {
	m := NewSearchSystemMonitor()

	m.LogSearch("", 1.0, false)

	dist := m.GetSystemHealth()["intent_distribution"].(map[string]int64)
	assert.Equal(t, int64(1), dist["UNKNOWN"])
}

func TestGetSystemHealthZeroState(t *testing.T) {
	m := NewSearchSystemMonitor()

	health := m.GetSystemHealth()

	assert.Equal(t, int64(0), health["queries_processed"])
	assert.Equal(t, 0.0, health["error_rate"])
	assert.Equal(t, 0.0, health["avg_response_time"])
}

func TestGetPerformanceReport(t *testing.T) {
	m := NewSearchSystemMonitor()

	m.LogSearch(pipeline.IntentProductDiscovery, 1.0, false)
	m.LogSearch(pipeline.IntentAvailability, 2.0, false)

	report := m.GetPerformanceReport()

	summary := report["summary"].(map[string]interface{})
	assert.Equal(t, int64(2), summary["total_queries"])
	assert.Equal(t, 0.0, summary["error_rate"])

	breakdown := report["intent_breakdown"].(map[string]interface{})
	discovery := breakdown[pipeline.IntentProductDiscovery].(map[string]interface{})
	assert.Equal(t, int64(1), discovery["query_count"])
	assert.InDelta(t, 50.0, discovery["percentage"].(float64), 1e-9)

	performance := report["performance"].(map[string]interface{})
	hourly := performance["hourly_distribution"].(map[string]int64)
	total := int64(0)
	for _, count := range hourly {
		total += count
	}
	assert.Equal(t, int64(2), total)
}

func TestSnapshotsAreCopies(t *testing.T) {
	m := NewSearchSystemMonitor()
	m.LogSearch(pipeline.IntentProductDiscovery, 1.0, false)

	dist := m.GetSystemHealth()["intent_distribution"].(map[string]int64)
	dist[pipeline.IntentProductDiscovery] = 999

	fresh := m.GetSystemHealth()["intent_distribution"].(map[string]int64)
	assert.Equal(t, int64(1), fresh[pipeline.IntentProductDiscovery])
}

func TestLogSearchConcurrent(t *testing.T) {
	m := NewSearchSystemMonitor()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.LogSearch(pipeline.IntentProductDiscovery, 1.0, false)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), m.GetSystemHealth()["queries_processed"])
}
