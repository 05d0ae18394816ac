package events

// Event type codes emitted by the search backend.
const (
	EventSearchExecuted = "SEARCH_EXECUTED"
	EventSearchError    = "SEARCH_ERROR"
	EventSearchFeedback = "SEARCH_FEEDBACK"
	EventProductIndexed = "PRODUCT_INDEXED"
)
