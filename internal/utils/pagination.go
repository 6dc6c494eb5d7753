package utils

import "strconv"

// Paginate truncates items according to optional page/size query
// parameters. Both must be positive for truncation to apply; with
// either absent or invalid the full slice is returned untouched, so
// list endpoints keep serving complete result sets by default.
func Paginate[T any](items []T, pageStr, sizeStr string) []T {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return items
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 {
		return items
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
