package search

import (
	"testing"

	"github.com/mvk-codes/rental_marketplace/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bangalorePool() []*models.Property {
	return []*models.Property{
		listing("P1", "Bangalore", 1400),
		listing("P2", "Bangalore", 2579),
		listing("P3", "Bangalore", 35000),
	}
}

func TestSearchBangalorePriceBand(t *testing.T) {
	res, err := Search(bangalorePool(),
		Filters{City: "Bangalore", MinAmount: amt(1000), MaxAmount: amt(3000)},
		Pagination{Page: 1, Limit: 10}, Sort{})
	require.NoError(t, err)

	require.Len(t, res.Data, 2)
	assert.Equal(t, "P1", res.Data[0].Code)
	assert.Equal(t, "P2", res.Data[1].Code)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1400.0, res.Stats.MinPrice)
	assert.Equal(t, 2579.0, res.Stats.MaxPrice)
	assert.Equal(t, 2, res.Stats.Count)
}

func TestSearchPaginationWindows(t *testing.T) {
	pool := []*models.Property{
		listing("P1", "Pune", 1000),
		listing("P2", "Pune", 1100),
		listing("P3", "Pune", 1200),
		listing("P4", "Pune", 1300),
		listing("P5", "Pune", 1400),
	}

	page := func(n int) *Result {
		res, err := Search(pool, Filters{}, Pagination{Page: n, Limit: 2}, Sort{})
		require.NoError(t, err)
		return res
	}

	assert.Len(t, page(1).Data, 2)
	assert.Len(t, page(2).Data, 2)
	assert.Len(t, page(3).Data, 1)

	// Past the end is not an error; totals and stats stay truthful.
	p4 := page(4)
	assert.Empty(t, p4.Data)
	assert.Equal(t, 5, p4.Total)
	assert.Equal(t, 5, p4.Stats.Count)
}

func TestSearchPagesReconstructFilteredSet(t *testing.T) {
	pool := bangalorePool()
	seen := map[string]int{}
	for pageNum := 1; pageNum <= 2; pageNum++ {
		res, err := Search(pool, Filters{}, Pagination{Page: pageNum, Limit: 2}, Sort{})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(res.Data), 2)
		for _, p := range res.Data {
			seen[p.Code]++
		}
	}
	assert.Len(t, seen, 3, "no omissions")
	for code, n := range seen {
		assert.Equal(t, 1, n, "duplicate of %s across pages", code)
	}
}

func TestSearchIsIdempotent(t *testing.T) {
	pool := bangalorePool()
	f := Filters{City: "Bangalore", MaxAmount: amt(3000)}
	pg := Pagination{Page: 1, Limit: 2}

	first, err := Search(pool, f, pg, Sort{Key: SortByPrice, Desc: true})
	require.NoError(t, err)
	second, err := Search(pool, f, pg, Sort{Key: SortByPrice, Desc: true})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSearchRejectsInvalidPagination(t *testing.T) {
	pool := bangalorePool()
	for _, pg := range []Pagination{
		{Page: 0, Limit: 10},
		{Page: -1, Limit: 10},
		{Page: 1, Limit: 0},
		{Page: 1, Limit: -5},
	} {
		_, err := Search(pool, Filters{}, pg, Sort{})
		assert.ErrorIs(t, err, ErrInvalidPagination, "pagination %+v", pg)
	}
}

func TestSearchSortOrders(t *testing.T) {
	pool := bangalorePool()

	asc, err := Search(pool, Filters{}, Pagination{Page: 1, Limit: 10}, Sort{Key: SortByPrice})
	require.NoError(t, err)
	assert.Equal(t, []string{"P1", "P2", "P3"}, codes(asc.Data))

	desc, err := Search(pool, Filters{}, Pagination{Page: 1, Limit: 10}, Sort{Key: SortByPrice, Desc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"P3", "P2", "P1"}, codes(desc.Data))

	// Unknown sort keys keep insertion order.
	raw, err := Search(pool, Filters{}, Pagination{Page: 1, Limit: 10}, Sort{Key: "colour"})
	require.NoError(t, err)
	assert.Equal(t, []string{"P1", "P2", "P3"}, codes(raw.Data))
}

func TestSearchDoesNotMutateSource(t *testing.T) {
	pool := bangalorePool()
	_, err := Search(pool, Filters{}, Pagination{Page: 1, Limit: 10}, Sort{Key: SortByPrice, Desc: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"P1", "P2", "P3"}, codes(pool), "source order preserved")
	assert.Equal(t, 1400.0, pool[0].MonthlyAmount())
}

func TestSearchEmptyPoolStats(t *testing.T) {
	res, err := Search(nil, Filters{}, Pagination{Page: 1, Limit: 10}, Sort{})
	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.Zero(t, res.Total)
	assert.Equal(t, Stats{}, res.Stats)
}

func codes(props []*models.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.Code
	}
	return out
}
