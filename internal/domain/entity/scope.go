package entity

import "fmt"

// ScopeKind discriminates the browsing contexts a product list can be
// fetched for. Resolution is always driven by this tag, never by pattern
// matching on display labels.
type ScopeKind string

const (
	ScopeFeatured    ScopeKind = "featured"
	ScopeNewArrivals ScopeKind = "new_arrivals"
	ScopeUniversity  ScopeKind = "university"
	ScopeCity        ScopeKind = "city"
	ScopeCategory    ScopeKind = "category"
)

// Scope identifies one browsing context: a category, a university, a city,
// or one of the two special home-feed sections. The zero value is invalid.
type Scope struct {
	Kind ScopeKind

	// Name carries the category, university, or city name depending on Kind.
	// Unused for featured.
	Name string

	// University optionally narrows the new-arrivals section to one campus.
	University string
}

// FeaturedScope returns the scope for the "Featured Products" section.
func FeaturedScope() Scope {
	return Scope{Kind: ScopeFeatured}
}

// NewArrivalsScope returns the scope for the "New Arrivals" section,
// optionally narrowed to a university. An empty university means all campuses.
func NewArrivalsScope(university string) Scope {
	return Scope{Kind: ScopeNewArrivals, University: university}
}

// UniversityScope returns the scope for listings posted at a university.
func UniversityScope(name string) Scope {
	return Scope{Kind: ScopeUniversity, Name: name}
}

// CityScope returns the scope for listings posted in a city.
func CityScope(name string) Scope {
	return Scope{Kind: ScopeCity, Name: name}
}

// CategoryScope returns the scope for a product category.
func CategoryScope(name string) Scope {
	return Scope{Kind: ScopeCategory, Name: name}
}

// Validate checks that the scope carries the payload its kind requires.
func (s Scope) Validate() error {
	switch s.Kind {
	case ScopeFeatured, ScopeNewArrivals:
		return nil
	case ScopeUniversity, ScopeCity, ScopeCategory:
		if s.Name == "" {
			return &ValidationError{Field: "name", Message: fmt.Sprintf("is required for %s scope", s.Kind)}
		}
		return nil
	default:
		return &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown scope kind %q", s.Kind)}
	}
}

// Identifier returns a stable machine identifier for the scope, used for
// cache namespacing and logging. It is not a display label.
func (s Scope) Identifier() string {
	switch s.Kind {
	case ScopeFeatured:
		return string(ScopeFeatured)
	case ScopeNewArrivals:
		if s.University == "" {
			return string(ScopeNewArrivals)
		}
		return string(ScopeNewArrivals) + ":" + s.University
	default:
		return string(s.Kind) + ":" + s.Name
	}
}
