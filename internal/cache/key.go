// Package cache implements the client-side product cache: deterministic key
// derivation, a TTL-checked store over a pluggable key-value backend, and a
// scheduled sweeper for expired entries.
//
// The cache is an optimization, never a correctness dependency: every failure
// path degrades to a miss, and writes are logged-and-swallowed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"market-client/internal/common/pagination"
	"market-client/internal/domain/entity"
	"market-client/internal/filter"
)

// Cache namespaces. The namespace prefixes every derived key and selects the
// TTL class: listing caches turn over quickly, profile data lives longer.
const (
	NamespaceListing = "listing"
	NamespaceProfile = "profile"
)

// DeriveKey computes the cache key for a page-0 request. The result is a
// pure function of the namespace, scope, and filter selection: logically
// identical requests always map to the same key, logically different ones
// never collide in practice (SHA-256 over a canonical serialization).
//
// ok is false when the request is not cacheable at all: a free-text keyword
// disables caching entirely, and only the first page is ever cached.
func DeriveKey(namespace string, scope entity.Scope, sel filter.Selection, keyword string, cursor pagination.Cursor) (key string, ok bool) {
	if keyword != "" {
		return "", false
	}
	if !cursor.IsStart() {
		return "", false
	}

	// json.Marshal emits map keys in sorted order, which makes the
	// serialization canonical. Slices are sorted copies so that the same
	// selection built in a different order derives the same key.
	input := map[string]any{
		"scope":         scope.Identifier(),
		"conditions":    sortedCopy(sel.Conditions),
		"selling_types": sortedCopy(sel.SellingTypes),
		"sort":          string(sel.Sort),
		"page":          0,
	}

	raw, err := json.Marshal(input)
	if err != nil {
		// Marshalling a map of strings cannot fail; treat it as uncacheable
		// rather than panicking if it somehow does.
		return "", false
	}

	sum := sha256.Sum256(raw)
	return namespace + ":" + hex.EncodeToString(sum[:]), true
}

func sortedCopy(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
