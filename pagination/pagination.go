package pagination

import "gorm.io/gorm"

// Page is a materialized slice of an ordered result set
type Page[T any] struct {
	Items    []T
	Number   int   // 1-based
	NumPages int   // at least 1, even when there are no items
	Count    int64 // items across all pages
	PerPage  int
}

func (p Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p Page[T]) NextPageNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.Number
}

func (p Page[T]) PreviousPageNumber() int {
	if p.HasPrevious() {
		return p.Number - 1
	}
	return p.Number
}

// PageRange lists all page numbers, handy for templates
func (p Page[T]) PageRange() []int {
	result := make([]int, p.NumPages)
	for i := range result {
		result[i] = i + 1
	}
	return result
}

// Clamp moves an out of range page number to the nearest valid one
func Clamp(number int, count int64, perPage int) (clamped, numPages int) {
	numPages = int((count + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}
	if number < 1 {
		return 1, numPages
	}
	if number > numPages {
		return numPages, numPages
	}
	return number, numPages
}

// Paginate counts the rows matched by query and loads the requested page.
// The query must already carry its ordering. Preloads are only applied when
// loading the items.
func Paginate[T any](query *gorm.DB, number, perPage int, preloads ...string) (page Page[T], err error) {
	if perPage < 1 {
		perPage = 1
	}
	query = query.Session(&gorm.Session{})
	if err = query.Model(new(T)).Count(&page.Count).Error; err != nil {
		return
	}
	page.PerPage = perPage
	page.Number, page.NumPages = Clamp(number, page.Count, perPage)
	page.Items = []T{}
	if page.Count == 0 {
		return
	}
	load := query.Offset((page.Number - 1) * perPage).Limit(perPage)
	for _, preload := range preloads {
		load = load.Preload(preload)
	}
	err = load.Find(&page.Items).Error
	return
}
