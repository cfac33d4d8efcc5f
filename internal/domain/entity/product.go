// Package entity defines the core domain entities and validation logic for the
// marketplace client. It contains the fundamental business objects such as
// Product and Scope, along with their validation rules and domain-specific errors.
package entity

import (
	"strconv"
	"time"
)

// Selling types observed in backend payloads. Items priced at zero are
// treated as free regardless of their declared selling type.
const (
	SellingTypeSell = "sell"
	SellingTypeRent = "rent"
	SellingTypeFree = "free"
)

// Product represents a single marketplace listing.
// ID is an opaque string and is the only stable identity: two records with
// equal IDs refer to the same listing even when other fields differ.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"` // decimal-as-string, parsed only in explicit numeric contexts
	Condition   string   `json:"condition"`
	SellingType string   `json:"sellingType"`
	Category    string   `json:"category"`
	PostingDate string   `json:"postingDate"` // RFC 3339 datetime string
	Images      []string `json:"images,omitempty"`

	// Display/cache-key attributes only, never business logic.
	University string `json:"university,omitempty"`
	City       string `json:"city,omitempty"`
	Zipcode    string `json:"zipcode,omitempty"`
}

// PriceValue parses the price string for numeric comparison.
// Unparseable prices compare as zero so that malformed records sort
// deterministically instead of failing the whole derivation.
func (p Product) PriceValue() float64 {
	v, err := strconv.ParseFloat(p.Price, 64)
	if err != nil {
		return 0
	}
	return v
}

// IsFree reports whether the listing costs nothing. This is the synthetic
// "free" selling type: an item with price zero is free even when its declared
// selling type is sell or rent.
func (p Product) IsFree() bool {
	return p.PriceValue() == 0
}

// PostedTime parses the posting date for chronological comparison.
// Missing or unparseable dates compare as the zero time (oldest).
func (p Product) PostedTime() time.Time {
	if p.PostingDate == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, p.PostingDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Validate checks the minimal structural requirements for a product record.
// Records failing validation are dropped during decoding rather than
// surfaced to the UI.
func (p Product) Validate() error {
	if p.ID == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	if p.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	return nil
}
