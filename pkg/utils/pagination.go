package utils

const (
	DefaultPageFrom = 0
	DefaultPageSize = 10
)

// PageOffset converts a from/size window into a page-aligned offset:
// from=7,size=5 starts at the second page (offset 5).
func PageOffset(from, size int) int {
	if size <= 0 || from <= 0 {
		return 0
	}
	return (from / size) * size
}
