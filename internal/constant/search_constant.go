package constant

const (
	// EmbedProductTopicName is the internal topic carrying product
	// embedding jobs from the catalog write path to the worker.
	EmbedProductTopicName = "embed_product"

	// ConversationHistoryLimit caps how many turns a session keeps.
	ConversationHistoryLimit = 10

	// MaxProductReferencesPerTurn caps product references stored per turn.
	MaxProductReferencesPerTurn = 3
)
