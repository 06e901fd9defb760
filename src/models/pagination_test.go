package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationNormalize(t *testing.T) {
	// limit=0 หรือค่าติดลบจาก query string ต้องถูกดันกลับเป็นค่าตั้งต้น
	t.Run("TestZeroAndNegativeClamped", func(t *testing.T) {
		p := PaginationParams{Page: 0, Limit: 0}
		p.Normalize()
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.Limit)

		p = PaginationParams{Page: -3, Limit: -1}
		p.Normalize()
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.Limit)
	})

	t.Run("TestValidValuesUntouched", func(t *testing.T) {
		p := PaginationParams{Page: 4, Limit: 50}
		p.Normalize()
		assert.Equal(t, 4, p.Page)
		assert.Equal(t, 50, p.Limit)
	})
}

func TestNewPaginatedResponse(t *testing.T) {
	params := DefaultPagination()
	params.Page = 2

	resp := NewPaginatedResponse([]string{}, 25, params)

	assert.Equal(t, int64(25), resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasNext)
	assert.True(t, resp.HasPrevious)
}
