package server

// paginate slices one zero-based page out of an ordered result set and
// reports whether anything remains beyond it. Pages past the end yield an
// empty page; a negative page index is treated as page 0.
func paginate[T any](items []T, page, size int) ([]T, bool) {
	if page < 0 {
		page = 0
	}
	start := page * size
	if start >= len(items) {
		return []T{}, false
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], end < len(items)
}
