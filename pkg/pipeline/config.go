package pipeline

// Config collects the tunable limits of the pipeline. Defaults reproduce the
// production behavior; tests override individual fields.
type Config struct {
	MaxQueryLength    int // validation limit in characters
	RetrievalK        int // nearest neighbors fetched from the vector store
	RankingCandidates int // results sent to the LLM for re-ranking
	ExactMatchWindow  int // results inspected for an exact product match
	QualityWindow     int // results inspected by the remaining quality rules
	ResponseResults   int // results summarized in the generated response
}

func DefaultConfig() Config {
	return Config{
		MaxQueryLength:    500,
		RetrievalK:        10,
		RankingCandidates: 7,
		ExactMatchWindow:  3,
		QualityWindow:     5,
		ResponseResults:   3,
	}
}
