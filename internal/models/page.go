package models

// ProductPage wraps one page of products together with its paging metadata.
type ProductPage struct {
	Content       []Product `json:"content"`
	Page          int       `json:"page"`
	Size          int       `json:"size"`
	TotalElements int64     `json:"total_elements"`
	TotalPages    int       `json:"total_pages"`
}

// GroupPage wraps one page of product groups.
type GroupPage struct {
	Content       []ProductGroup `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"total_elements"`
	TotalPages    int            `json:"total_pages"`
}

// PageCount returns how many pages of the given size are needed for total
// elements, with a minimum of 0 pages for an empty result.
func PageCount(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}
