package dto

// Pagination is the shared pagination block returned by paginated list
// endpoints. TotalPages is ceil(Total/Limit).
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(total int64, page, limit int) Pagination {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// OwnerResponse is the reduced uploader/creator view joined into content
// responses.
type OwnerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListFilter covers the query parameters accepted by the book and note list
// endpoints. "all" is treated the same as an empty filter value.
type ListFilter struct {
	Session  string `form:"session"`
	Semester string `form:"semester"`
	Search   string `form:"search"`
	Limit    int    `form:"limit"`
	Page     int    `form:"page"`
}

func (f *ListFilter) Normalize() {
	if f.Session == "all" {
		f.Session = ""
	}
	if f.Semester == "all" {
		f.Semester = ""
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}
}
