package store

import "time"

// Product is the read-only snapshot of a catalog item as it travels through
// the search pipeline. Attribute values are either a scalar or a list of
// scalars, mirroring the JSONB column they are loaded from.
type Product struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	Price          float64                `json:"price"`
	Category       string                 `json:"category"`
	Brand          string                 `json:"brand"`
	Attributes     map[string]interface{} `json:"attributes"`
	InStock        bool                   `json:"in_stock"`
	RelevanceScore float64                `json:"relevance_score"`
}

// RankedProduct is a Product after LLM re-ranking. Rank is 1-based; products
// the ranker omitted keep Rank 0 and an empty reason.
type RankedProduct struct {
	Product
	Rank       int    `json:"rank,omitempty"`
	RankReason string `json:"rank_reason,omitempty"`
}

// ProductReference is the minimal pointer kept in conversation history so a
// follow-up query like "do you have those in red" can be resolved.
type ProductReference struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Turn is one completed query/response exchange in a session.
type Turn struct {
	Query             string             `json:"query"`
	Response          string             `json:"response"`
	ProductReferences []ProductReference `json:"product_references"`
	Timestamp         time.Time          `json:"timestamp"`
}

// Preferences holds the stored personalization profile for a user.
type Preferences struct {
	PreferredBrands      []string `json:"preferred_brands"`
	PriceSensitivity     string   `json:"price_sensitivity"`
	CategoriesOfInterest []string `json:"categories_of_interest"`
}

const (
	PriceSensitivityLow    = "low"
	PriceSensitivityMedium = "medium"
	PriceSensitivityHigh   = "high"
)

// DefaultPreferences is returned for users without a stored profile.
func DefaultPreferences() Preferences {
	return Preferences{
		PreferredBrands:      []string{},
		PriceSensitivity:     PriceSensitivityMedium,
		CategoriesOfInterest: []string{},
	}
}
