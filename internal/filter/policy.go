package filter

// DefaultClientFilterThreshold is the accumulated-list size below which
// filtering stays entirely client-side. Past it, matching items may simply
// not have been paged in yet, and constraints should travel to the backend
// as query parameters instead.
const DefaultClientFilterThreshold = 500

// Placement says where a filter change should be evaluated.
type Placement int

const (
	// PlacementClient derives the visible list locally from accumulated items.
	PlacementClient Placement = iota

	// PlacementServer pushes the constraints into fetch parameters and
	// refetches from the start.
	PlacementServer
)

// DecidePlacement picks client- or server-side filtering for the current
// dataset. Small, fully-loaded lists filter locally for instant feedback;
// anything still paginating or past the threshold goes to the server so the
// UI never shows "0 results" just because matches haven't been paged in.
func DecidePlacement(accumulated int, hasMore bool, threshold int) Placement {
	if threshold <= 0 {
		threshold = DefaultClientFilterThreshold
	}
	if accumulated < threshold && !hasMore {
		return PlacementClient
	}
	return PlacementServer
}
