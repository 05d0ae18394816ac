package pipeline

import (
	"context"
	"fmt"
	"log"

	"intent-search-be/pkg/llm"
)

// Stage identifies one node of the search pipeline.
type Stage int

const (
	StageValidateInput Stage = iota
	StageHandleValidationError
	StageClassifyIntent
	StageExtractParameters
	StageEnhanceQuery
	StageRetrieveResults
	StageRankResults
	StageValidateQuality
	StageHandleNoResults
	StageHandleQualityIssues
	StageBuildResponse
	StageTelemetry
	StageEnd
)

func (s Stage) String() string {
	switch s {
	case StageValidateInput:
		return "validate_input"
	case StageHandleValidationError:
		return "handle_validation_error"
	case StageClassifyIntent:
		return "classify_intent"
	case StageExtractParameters:
		return "extract_parameters"
	case StageEnhanceQuery:
		return "enhance_query"
	case StageRetrieveResults:
		return "retrieve_results"
	case StageRankResults:
		return "rank_results"
	case StageValidateQuality:
		return "validate_quality"
	case StageHandleNoResults:
		return "handle_no_results"
	case StageHandleQualityIssues:
		return "handle_quality_issues"
	case StageBuildResponse:
		return "build_response"
	case StageTelemetry:
		return "add_telemetry"
	case StageEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Engine runs a SearchState through the fixed stage graph. Routing is an
// exhaustive transition function over the Stage enum, so every reachable path
// is visible in one place and always terminates through telemetry.
type Engine struct {
	llmProvider llm.LLMProvider
	retriever   Retriever
	config      Config
	logger      *log.Logger
}

func NewEngine(llmProvider llm.LLMProvider, retriever Retriever, config Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		llmProvider: llmProvider,
		retriever:   retriever,
		config:      config,
		logger:      logger,
	}
}

func (e *Engine) Config() Config {
	return e.config
}

// next returns the stage that follows the one just executed. Branch
// predicates read only the fields their stage produced.
func (e *Engine) next(current Stage, state SearchState) Stage {
	switch current {
	case StageValidateInput:
		return StageClassifyIntent
	case StageClassifyIntent:
		if state.InputValidationError != "" {
			return StageHandleValidationError
		}
		return StageExtractParameters
	case StageExtractParameters:
		return StageEnhanceQuery
	case StageEnhanceQuery:
		return StageRetrieveResults
	case StageRetrieveResults:
		return StageRankResults
	case StageRankResults:
		return StageValidateQuality
	case StageValidateQuality:
		if len(state.RankedResults) == 0 {
			return StageHandleNoResults
		}
		if len(state.metaStrings("result_quality_issues")) > 0 {
			return StageHandleQualityIssues
		}
		return StageBuildResponse
	case StageHandleValidationError, StageHandleNoResults, StageHandleQualityIssues, StageBuildResponse:
		return StageTelemetry
	case StageTelemetry:
		return StageEnd
	default:
		return StageEnd
	}
}

func (e *Engine) run(ctx context.Context, stage Stage, state SearchState) SearchState {
	switch stage {
	case StageValidateInput:
		return e.validateInput(state)
	case StageHandleValidationError:
		return e.handleValidationError(state)
	case StageClassifyIntent:
		return e.classifyIntent(ctx, state)
	case StageExtractParameters:
		return e.extractParameters(ctx, state)
	case StageEnhanceQuery:
		return e.enhanceQuery(ctx, state)
	case StageRetrieveResults:
		return e.retrieveResults(ctx, state)
	case StageRankResults:
		return e.rankResults(ctx, state)
	case StageValidateQuality:
		return e.validateQuality(state)
	case StageHandleNoResults:
		return e.handleNoResults(ctx, state)
	case StageHandleQualityIssues:
		return e.handleQualityIssues(ctx, state)
	case StageBuildResponse:
		return e.buildResponse(ctx, state)
	case StageTelemetry:
		return e.addTelemetry(state)
	default:
		return state
	}
}

// runSafe executes one stage with panic isolation. A panicking stage leaves
// the state untouched apart from an error marker, and the pipeline moves on.
func (e *Engine) runSafe(ctx context.Context, stage Stage, state SearchState) (out SearchState) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("[ERROR] Stage %s panicked: %v", stage, r)
			out = state.withMeta(map[string]interface{}{
				fmt.Sprintf("%s_panic", stage): fmt.Sprintf("%v", r),
			})
			if out.Err == "" {
				out.Err = fmt.Sprintf("Stage %s failed", stage)
			}
		}
	}()
	return e.run(ctx, stage, state)
}

// Invoke runs the full pipeline on the initial state. Every execution ends at
// telemetry regardless of which branch was taken; Invoke never returns an
// error because every failure mode degrades into state fields.
func (e *Engine) Invoke(ctx context.Context, initial SearchState) SearchState {
	state := initial
	stage := StageValidateInput

	for stage != StageEnd {
		state = e.runSafe(ctx, stage, state)
		stage = e.next(stage, state)
	}

	return state
}
