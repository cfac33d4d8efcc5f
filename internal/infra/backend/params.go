package backend

import (
	"net/url"
	"strconv"

	"market-client/internal/filter"
	"market-client/internal/scope"
	"market-client/internal/usecase/listing"
)

// buildQuery assembles the query string for one page fetch: the route's own
// parameters, pagination in the style the route speaks, and whatever filter
// constraints travel server-side.
func buildQuery(route scope.Route, req listing.FetchRequest) url.Values {
	q := url.Values{}
	for k, vs := range route.Query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	q.Set("size", strconv.Itoa(req.PageSize))
	switch route.Style {
	case scope.StyleToken:
		if req.Cursor.Token != "" {
			q.Set("pageToken", req.Cursor.Token)
		}
	default:
		q.Set("page", strconv.Itoa(req.Cursor.Page))
	}

	for _, c := range req.Selection.Conditions {
		q.Add("condition", c)
	}
	for _, st := range req.Selection.SellingTypes {
		q.Add("sellingType", st)
	}
	if sortBy, direction, ok := sortParams(req.Selection.Sort); ok {
		q.Set("sortBy", sortBy)
		q.Set("sortDirection", direction)
	}

	if req.Keyword != "" {
		q.Set("keyword", req.Keyword)
	}

	return q
}

// sortParams maps a sort key onto the backend's sortBy/sortDirection pair.
// Default ordering sends nothing and lets the backend decide.
func sortParams(key filter.SortKey) (sortBy, direction string, ok bool) {
	switch key {
	case filter.SortPriceLowHigh:
		return "price", "asc", true
	case filter.SortPriceHighLow:
		return "price", "desc", true
	case filter.SortNewest:
		return "postingDate", "desc", true
	case filter.SortPopularity:
		return "popularity", "desc", true
	default:
		return "", "", false
	}
}
