package pipeline

import (
	"time"
)

// addTelemetry closes out every pipeline run with timing and quality
// metadata. This is the single terminal stage: all branches converge here.
func (e *Engine) addTelemetry(state SearchState) SearchState {
	now := time.Now().UTC()

	updates := map[string]interface{}{
		"process_complete_timestamp": now,
	}

	if raw, ok := state.Metadata["query_timestamp"]; ok {
		if start, ok := raw.(time.Time); ok {
			updates["total_execution_time"] = now.Sub(start).Seconds()
		}
	}

	qualityScore := 0.95
	if state.Err != "" {
		qualityScore = 0.5
	}
	updates["search_quality_score"] = qualityScore
	updates["pipeline_components_executed"] = countComponentsExecuted(state)

	e.logger.Printf("[TELEMETRY] quality_score=%.2f has_error=%t", qualityScore, state.Err != "")

	return state.withMeta(updates)
}

func countComponentsExecuted(state SearchState) int {
	count := 0
	if state.Intent != "" {
		count++
	}
	if state.Parameters.Count() > 0 {
		count++
	}
	if state.EnhancedQuery != "" {
		count++
	}
	if len(state.RetrievalResults) > 0 {
		count++
	}
	if len(state.RankedResults) > 0 {
		count++
	}
	if state.Response != "" {
		count++
	}
	return count
}
