// internal/pkg/pagination/pagination_test.go
package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClamps(t *testing.T) {
	p := Params{Page: 0, Limit: 0}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)

	p = Params{Page: 3, Limit: 500}
	p.Normalize()
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 200, p.Offset())
}

func TestBuild(t *testing.T) {
	pg := Build(Params{Page: 2, Limit: 10}, 35)
	assert.Equal(t, int64(35), pg.Total)
	assert.Equal(t, 4, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrevious)
	assert.Equal(t, 3, pg.NextPage)
	assert.Equal(t, 1, pg.PreviousPage)

	pg = Build(Params{Page: 1, Limit: 10}, 5)
	assert.Equal(t, 1, pg.TotalPages)
	assert.False(t, pg.HasNext)
	assert.False(t, pg.HasPrevious)
	assert.Equal(t, 1, pg.NextPage)
	assert.Equal(t, 1, pg.PreviousPage)
}
