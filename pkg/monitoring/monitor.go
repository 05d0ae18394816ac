package monitoring

import (
	"sync"
	"time"

	"intent-search-be/pkg/pipeline"
)

// SearchSystemMonitor keeps in-process counters about search traffic.
// All methods are safe for concurrent use.
type SearchSystemMonitor struct {
	mu sync.Mutex

	queriesProcessed int64
	errorCount       int64
	avgResponseTime  float64

	intentDistribution  map[string]int64
	performanceByIntent map[string]*IntentPerformance
	hourlyQueryCount    map[string]int64
}

type IntentPerformance struct {
	Count     int64   `json:"count"`
	AvgTime   float64 `json:"avg_time"`
	ErrorRate float64 `json:"error_rate"`
}

func NewSearchSystemMonitor() *SearchSystemMonitor {
	m := &SearchSystemMonitor{
		intentDistribution:  make(map[string]int64),
		performanceByIntent: make(map[string]*IntentPerformance),
		hourlyQueryCount:    make(map[string]int64),
	}
	for _, intent := range []string{
		pipeline.IntentProductDiscovery,
		pipeline.IntentSpecificProduct,
		pipeline.IntentAttributeSearch,
		pipeline.IntentProblemSolution,
		pipeline.IntentComparison,
		pipeline.IntentPriceBased,
		pipeline.IntentAvailability,
	} {
		m.performanceByIntent[intent] = &IntentPerformance{}
	}
	return m
}

// LogSearch records one completed search. hasError covers both pipeline
// errors and degraded results.
func (m *SearchSystemMonitor) LogSearch(intent string, executionTime float64, hasError bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queriesProcessed++
	if hasError {
		m.errorCount++
	}

	if intent == "" {
		intent = "UNKNOWN"
	}
	m.intentDistribution[intent]++

	// Incremental mean, no per-query history kept
	m.avgResponseTime = (m.avgResponseTime*float64(m.queriesProcessed-1) + executionTime) / float64(m.queriesProcessed)

	if perf, ok := m.performanceByIntent[intent]; ok {
		perf.Count++
		perf.AvgTime = (perf.AvgTime*float64(perf.Count-1) + executionTime) / float64(perf.Count)
		errHit := 0.0
		if hasError {
			errHit = 1.0
		}
		perf.ErrorRate = (perf.ErrorRate*float64(perf.Count-1) + errHit) / float64(perf.Count)
	}

	hour := time.Now().Format("2006-01-02-15")
	m.hourlyQueryCount[hour]++
}

func (m *SearchSystemMonitor) GetSystemHealth() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	return map[string]interface{}{
		"queries_processed":     m.queriesProcessed,
		"error_rate":            float64(m.errorCount) / float64(max64(1, m.queriesProcessed)),
		"intent_distribution":   copyInt64Map(m.intentDistribution),
		"avg_response_time":     m.avgResponseTime,
		"performance_by_intent": m.copyPerformance(),
	}
}

func (m *SearchSystemMonitor) GetPerformanceReport() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := max64(1, m.queriesProcessed)
	intentBreakdown := make(map[string]interface{}, len(m.intentDistribution))
	for intent, count := range m.intentDistribution {
		intentBreakdown[intent] = map[string]interface{}{
			"query_count": count,
			"percentage":  float64(count) / float64(total) * 100,
		}
	}

	return map[string]interface{}{
		"summary": map[string]interface{}{
			"total_queries":     m.queriesProcessed,
			"error_rate":        float64(m.errorCount) / float64(total),
			"avg_response_time": m.avgResponseTime,
		},
		"intent_breakdown": intentBreakdown,
		"performance": map[string]interface{}{
			"by_intent":           m.copyPerformance(),
			"hourly_distribution": copyInt64Map(m.hourlyQueryCount),
		},
	}
}

func (m *SearchSystemMonitor) copyPerformance() map[string]IntentPerformance {
	out := make(map[string]IntentPerformance, len(m.performanceByIntent))
	for intent, perf := range m.performanceByIntent {
		out[intent] = *perf
	}
	return out
}

func copyInt64Map(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
