package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	page, limit := Normalize(0, 0)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)

	page, limit = Normalize(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, MaxLimit, limit, "limit should be capped")
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(2, 10, 25)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, 25, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	empty := NewMeta(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)

	exact := NewMeta(1, 5, 10)
	assert.Equal(t, 2, exact.TotalPages)
}
