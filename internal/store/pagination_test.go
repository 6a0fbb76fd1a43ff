package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestNewPageDefaults(t *testing.T) {
	p, err := NewPage(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultPage, p.Number)
	assert.Equal(t, DefaultPerPage, p.PerPage)
}

func TestNewPageValid(t *testing.T) {
	p, err := NewPage(intPtr(3), intPtr(50))
	require.NoError(t, err)
	assert.Equal(t, 3, p.Number)
	assert.Equal(t, 50, p.PerPage)
	assert.Equal(t, 100, p.Offset())
	assert.Equal(t, 50, p.Limit())
}

func TestNewPageRejectsOutOfRange(t *testing.T) {
	t.Run("page below 1", func(t *testing.T) {
		_, err := NewPage(intPtr(0), nil)
		require.Error(t, err)
		var pe ErrInvalidPagination
		require.ErrorAs(t, err, &pe)
	})

	t.Run("per_page below 1", func(t *testing.T) {
		_, err := NewPage(nil, intPtr(0))
		require.Error(t, err)
	})

	t.Run("per_page above max", func(t *testing.T) {
		_, err := NewPage(nil, intPtr(MaxPerPage+1))
		require.Error(t, err)
	})
}

func TestNewPaginatedComputesPageCount(t *testing.T) {
	p := Page{Number: 1, PerPage: 10}

	t.Run("exact multiple", func(t *testing.T) {
		result := NewPaginated([]int{1, 2, 3}, p, 20)
		assert.Equal(t, 2, result.Pagination.Pages)
		require.NotNil(t, result.Pagination.TotalItems)
		assert.Equal(t, 20, *result.Pagination.TotalItems)
	})

	t.Run("remainder rounds up", func(t *testing.T) {
		result := NewPaginated([]int{1, 2, 3}, p, 21)
		assert.Equal(t, 3, result.Pagination.Pages)
	})

	t.Run("zero total", func(t *testing.T) {
		result := NewPaginated([]int{}, p, 0)
		assert.Equal(t, 0, result.Pagination.Pages)
	})
}
