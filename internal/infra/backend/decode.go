package backend

import (
	"encoding/json"
	"sort"
	"strconv"

	"market-client/internal/common/pagination"
	"market-client/internal/domain/entity"
	"market-client/internal/usecase/listing"
)

// envelope covers both paginated response shapes the backend has shipped:
// offset metadata (totalItems/currentPage/totalPages) and token metadata
// (nextPageToken/hasMorePages). Products stays raw because it has been
// observed as an array, an object keyed by index, and worse.
type envelope struct {
	Products      json.RawMessage `json:"products"`
	TotalItems    *int            `json:"totalItems"`
	CurrentPage   *int            `json:"currentPage"`
	TotalPages    *int            `json:"totalPages"`
	NextPageToken *string         `json:"nextPageToken"`
	HasMorePages  *bool           `json:"hasMorePages"`
}

// decodePage normalizes a response body into a Page. Three shapes are
// accepted:
//
//   - a bare array of records, meaning a single unpaginated page
//   - an object with products + totalItems/currentPage/totalPages
//   - an object with products + nextPageToken/hasMorePages
//
// Anything else is a DecodeError.
func decodePage(body []byte) (pagination.Page, error) {
	// Shape (a): bare array.
	var bare []entity.Product
	if err := json.Unmarshal(body, &bare); err == nil {
		return pagination.Page{Items: validRecords(bare), HasMore: false}, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return pagination.Page{}, &listing.DecodeError{Reason: "response is neither a product array nor a paginated object", Err: err}
	}
	if env.Products == nil {
		return pagination.Page{}, &listing.DecodeError{Reason: "paginated object has no products field"}
	}

	items, err := decodeProducts(env.Products)
	if err != nil {
		return pagination.Page{}, err
	}

	page := pagination.Page{Items: items}

	switch {
	case env.NextPageToken != nil || env.HasMorePages != nil:
		// Shape (c): token pagination, passed through.
		if env.HasMorePages != nil {
			page.HasMore = *env.HasMorePages
		}
		if env.NextPageToken != nil && *env.NextPageToken != "" {
			page.NextCursor = pagination.TokenCursor(*env.NextPageToken)
		}
		if env.TotalItems != nil {
			page.TotalCount = env.TotalItems
		}

	case env.CurrentPage != nil && env.TotalPages != nil:
		// Shape (b): offset pagination.
		page.HasMore = pagination.HasMoreOffset(*env.CurrentPage, *env.TotalPages)
		if page.HasMore {
			page.NextCursor = pagination.PageCursor(*env.CurrentPage + 1)
		}
		page.TotalCount = env.TotalItems

	default:
		// An object with products but no recognizable pagination metadata
		// is treated like a bare array: one page, nothing more.
		page.HasMore = false
	}

	return page, nil
}

// decodeProducts accepts the products field as an array, or defensively as a
// non-array object whose values are the records. The backend has
// historically serialized a foreign list type as {"0": {...}, "1": {...}};
// those values are recovered in key order, dropping any that are null or not
// object-shaped.
func decodeProducts(raw json.RawMessage) ([]entity.Product, error) {
	var arr []entity.Product
	if err := json.Unmarshal(raw, &arr); err == nil {
		return validRecords(arr), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &listing.DecodeError{Reason: "products field is neither an array nor an object", Err: err}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		// Index-like keys order numerically; anything else falls back to
		// lexicographic so the result stays deterministic.
		ni, erri := strconv.Atoi(keys[i])
		nj, errj := strconv.Atoi(keys[j])
		if erri == nil && errj == nil {
			return ni < nj
		}
		if erri == nil {
			return true
		}
		if errj == nil {
			return false
		}
		return keys[i] < keys[j]
	})

	items := make([]entity.Product, 0, len(keys))
	for _, k := range keys {
		var p entity.Product
		if err := json.Unmarshal(obj[k], &p); err != nil {
			continue // null or non-object value, dropped
		}
		if err := p.Validate(); err != nil {
			continue
		}
		items = append(items, p)
	}
	return items, nil
}

// validRecords drops records missing their structural minimum (id, name).
func validRecords(items []entity.Product) []entity.Product {
	out := make([]entity.Product, 0, len(items))
	for _, p := range items {
		if err := p.Validate(); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}
