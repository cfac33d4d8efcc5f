package pagination

// HasMoreOffset derives the has-more flag for offset pagination from the
// backend's currentPage/totalPages fields (both 0-based page count semantics
// as the backend reports them).
//
// Formula: hasMore = currentPage < totalPages - 1
func HasMoreOffset(currentPage, totalPages int) bool {
	return currentPage < totalPages-1
}
