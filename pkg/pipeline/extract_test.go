package pipeline

import (
	"strings"
	"testing"
)

func TestParseParameters(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantStatus string
		check      func(t *testing.T, p Parameters)
	}{
		{
			name:       "full parameter set",
			text:       `{"product_type": " headphones ", "brands": ["Sony", " Bose "], "price_range": {"max": 200}}`,
			wantStatus: ExtractionStatusSuccess,
			check: func(t *testing.T, p Parameters) {
				if p.ProductType != "headphones" {
					t.Errorf("ProductType = %q, want trimmed %q", p.ProductType, "headphones")
				}
				if len(p.Brands) != 2 || p.Brands[1] != "Bose" {
					t.Errorf("Brands = %v, want trimmed [Sony Bose]", p.Brands)
				}
				if p.PriceRange == nil || p.PriceRange.Max == nil || *p.PriceRange.Max != 200 {
					t.Errorf("PriceRange = %+v, want max 200", p.PriceRange)
				}
				if p.Count() != 3 {
					t.Errorf("Count() = %d, want 3", p.Count())
				}
			},
		},
		{
			name:       "empty object",
			text:       `{}`,
			wantStatus: ExtractionStatusSuccess,
			check: func(t *testing.T, p Parameters) {
				if p.Count() != 0 {
					t.Errorf("Count() = %d, want 0", p.Count())
				}
			},
		},
		{
			name:       "not json",
			text:       `these are the parameters you asked for`,
			wantStatus: ExtractionStatusJSONParseError,
		},
		{
			name:       "wrong shape",
			text:       `{"brands": "Sony"}`,
			wantStatus: "VALIDATION_ERROR",
		},
		{
			name:       "negative min price",
			text:       `{"price_range": {"min": -10}}`,
			wantStatus: "VALIDATION_ERROR: price cannot be negative",
		},
		{
			name:       "negative max price",
			text:       `{"price_range": {"max": -1}}`,
			wantStatus: "VALIDATION_ERROR: price cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, status := parseParameters(tt.text)

			if !strings.HasPrefix(status, tt.wantStatus) {
				t.Fatalf("status = %q, want prefix %q", status, tt.wantStatus)
			}
			if status != ExtractionStatusSuccess && params.Count() != 0 {
				t.Errorf("failed parse must return empty parameters, got %+v", params)
			}
			if tt.check != nil {
				tt.check(t, params)
			}
		})
	}
}

func TestStripJSONFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"a": 1}`, `{"a": 1}`},
		{"fenced json", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced with surrounding whitespace", "  ```json\n{}\n```  ", `{}`},
		{"unterminated fence left alone", "```json\n{}", "```json\n{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripJSONFence(tt.in); got != tt.want {
				t.Errorf("stripJSONFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
