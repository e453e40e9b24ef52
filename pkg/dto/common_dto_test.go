package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListFilterNormalize(t *testing.T) {
	f := ListFilter{Session: "all", Semester: "all"}
	f.Normalize()
	assert.Empty(t, f.Session)
	assert.Empty(t, f.Semester)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, 1, f.Page)

	f = ListFilter{Session: "2023-24", Limit: 5, Page: 3}
	f.Normalize()
	assert.Equal(t, "2023-24", f.Session)
	assert.Equal(t, 5, f.Limit)
	assert.Equal(t, 3, f.Page)

	f = ListFilter{Limit: -1, Page: 0}
	f.Normalize()
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, 1, f.Page)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(25, 2, 20)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 2, p.TotalPages)

	p = NewPagination(0, 1, 20)
	assert.Equal(t, 0, p.TotalPages)

	p = NewPagination(20, 1, 20)
	assert.Equal(t, 1, p.TotalPages)
}
