package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iroha-explorer/explorer/internal/store"
)

func newTestContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestParsePageDefaults(t *testing.T) {
	c := newTestContext("/")
	p, err := parsePage(c)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 15, p.PerPage)
}

func TestParsePageReadsQueryParams(t *testing.T) {
	c := newTestContext("/?page=2&per_page=30")
	p, err := parsePage(c)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Number)
	assert.Equal(t, 30, p.PerPage)
}

func TestParsePageRejectsNonNumeric(t *testing.T) {
	c := newTestContext("/?page=abc")
	_, err := parsePage(c)
	require.Error(t, err)
}

func TestParsePageRejectsOutOfRange(t *testing.T) {
	c := newTestContext("/?per_page=0")
	_, err := parsePage(c)
	require.Error(t, err)
}

func TestPaginatedWrapsItemsAndMetadata(t *testing.T) {
	type row struct{ N int }
	items := []row{{N: 1}, {N: 2}}
	p, err := parsePage(newTestContext("/"))
	require.NoError(t, err)

	result, err := store.NewPage(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, p, result)

	resp := paginated(items, store.NewPaginated(items, p, 2).Pagination, func(r row) any { return r.N })
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 2, *resp.Pagination.TotalItems)
}
