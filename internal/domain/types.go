package domain

// Pagination carries paging params and totals.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Sort defines sorting preference.
type Sort struct {
	Field     string `json:"field"`
	Direction string `json:"direction"` // asc / desc
}

// NewPagination fills TotalPages from total and pageSize.
func NewPagination(page, pageSize, total int) Pagination {
	p := Pagination{Page: page, PageSize: pageSize, Total: total}
	if pageSize > 0 {
		p.TotalPages = total / pageSize
		if total%pageSize != 0 {
			p.TotalPages++
		}
	}
	return p
}
