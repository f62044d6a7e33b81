// Package pagination computes page windows over a partition of tasks.
package pagination

import "math"

// PageSize is fixed; no variable page sizing is exposed.
const PageSize = 5

// Window is the offset/limit pair to request from the store for one page.
type Window struct {
	Offset int
	Limit  int
}

// ForPage returns the window of the given 1-based page. No clamp against the
// total is applied: a page past the end yields an empty read, not an error.
// Offsets that would overflow saturate at math.MaxInt, which is still past the end.
func ForPage(page int) Window {
	if page-1 > math.MaxInt/PageSize {
		return Window{Offset: math.MaxInt, Limit: PageSize}
	}
	return Window{
		Offset: (page - 1) * PageSize,
		Limit:  PageSize,
	}
}

// TotalPages is ceil(total / PageSize). Zero matching records give zero pages.
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}
