// internal/pkg/pagination/pagination.go
package pagination

// Params carries the common list query parameters. Both dashboards send
// limit/page; defaults keep hand-written curl requests sane.
type Params struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
}

// Pagination is the envelope every list endpoint returns alongside data.
type Pagination struct {
	Page         int   `json:"page"`
	PageSize     int   `json:"page_size"`
	Total        int64 `json:"total"`
	TotalPages   int   `json:"total_pages"`
	HasNext      bool  `json:"has_next"`
	HasPrevious  bool  `json:"has_previous"`
	NextPage     int   `json:"next_page"`
	PreviousPage int   `json:"previous_page"`
}

// Normalize clamps page and limit to usable values.
func (p *Params) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset returns the row offset for the current page.
func (p *Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Build computes the pagination envelope for a total row count.
func Build(params Params, total int64) Pagination {
	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))

	pg := Pagination{
		Page:        params.Page,
		PageSize:    params.Limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     params.Page < totalPages,
		HasPrevious: params.Page > 1,
	}
	if pg.HasNext {
		pg.NextPage = params.Page + 1
	} else {
		pg.NextPage = params.Page
	}
	if pg.HasPrevious {
		pg.PreviousPage = params.Page - 1
	} else {
		pg.PreviousPage = params.Page
	}
	return pg
}
