package dto

import "intent-search-be/pkg/store"

type SearchRequest struct {
	// Query may be empty; the pipeline answers empty searches with a
	// friendly prompt instead of a 400.
	Query                 string `json:"query"`
	EnableConversation    *bool  `json:"enable_conversation"`
	EnablePersonalization *bool  `json:"enable_personalization"`
}

type SearchResponse struct {
	Response          string                `json:"response"`
	Intent            string                `json:"intent"`
	Results           []store.RankedProduct `json:"results"`
	Query             string                `json:"query"`
	EnhancedQuery     string                `json:"enhanced_query"`
	ConversationAware bool                  `json:"conversation_aware"`
	Error             string                `json:"error,omitempty"`
	RequestId         string                `json:"request_id"`
}

type PreferencesResponse struct {
	UserId      string            `json:"user_id"`
	Preferences store.Preferences `json:"preferences"`
}

type UpdatePreferencesRequest struct {
	PreferredBrands      []string `json:"preferred_brands"`
	PriceSensitivity     string   `json:"price_sensitivity" validate:"omitempty,oneof=low medium high"`
	CategoriesOfInterest []string `json:"categories_of_interest"`
}

type ClearSessionResponse struct {
	Message string `json:"message"`
}

type FeedbackRequest struct {
	Query             string `json:"query" validate:"required"`
	Rating            int    `json:"rating" validate:"required,min=1,max=5"`
	FeedbackText      string `json:"feedback_text"`
	SelectedProductId string `json:"selected_product_id"`
}

type FeedbackResponse struct {
	Status string `json:"status"`
}
