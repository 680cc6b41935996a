package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationQueryNormalize(t *testing.T) {
	// 缺省值
	q := PaginationQuery{}
	q.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PageSize)
	assert.Equal(t, 0, q.Offset())

	// 非法值回落到缺省值
	q = PaginationQuery{Page: -3, PageSize: 1000}
	q.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PageSize)

	// 正常值不变
	q = PaginationQuery{Page: 3, PageSize: 20}
	q.Normalize()
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 20, q.PageSize)
	assert.Equal(t, 40, q.Offset())
}

func TestNewPaginationResult(t *testing.T) {
	result := NewPaginationResult(42, 2, 10)
	assert.EqualValues(t, 42, result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 10, result.PageSize)
}
