package search

import (
	"errors"
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/mvk-codes/rental_marketplace/backend/models"
)

// ErrInvalidPagination rejects non-positive page or limit values outright;
// they are never silently coerced.
var ErrInvalidPagination = errors.New("page and limit must be positive")

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p Pagination) validate() error {
	if p.Page < 1 || p.Limit < 1 {
		return fmt.Errorf("%w: page=%d limit=%d", ErrInvalidPagination, p.Page, p.Limit)
	}
	return nil
}

// Sort keys recognized by the orchestrator. An empty key keeps the pool's
// insertion order; unknown keys are ignored the same way.
const (
	SortByPrice  = "price"
	SortByRating = "rating"
	SortByArea   = "area"
)

type Sort struct {
	Key  string `json:"key,omitempty"`
	Desc bool   `json:"desc,omitempty"`
}

// Stats aggregates the filtered, pre-pagination set.
type Stats struct {
	MinPrice  float64 `json:"minPrice"`
	MaxPrice  float64 `json:"maxPrice"`
	AvgRating float64 `json:"avgRating"`
	Count     int     `json:"count"`
}

// Result is a single page of a search along with the totals of the whole
// filtered set.
type Result struct {
	Data  []*models.Property `json:"data"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Total int                `json:"total"`
	Stats Stats              `json:"stats"`
}

// Search filters the candidate pool, applies the requested order, computes
// aggregate stats over the full filtered set and slices out the requested
// page. A page past the end yields empty data with the true total. The pool
// and its records are never mutated.
func Search(pool []*models.Property, f Filters, pg Pagination, s Sort) (*Result, error) {
	if err := pg.validate(); err != nil {
		return nil, err
	}

	matched := f.Apply(pool)
	orderBy(matched, s)

	res := &Result{
		Page:  pg.Page,
		Limit: pg.Limit,
		Total: len(matched),
		Stats: aggregate(matched),
		Data:  []*models.Property{},
	}

	start := (pg.Page - 1) * pg.Limit
	if start < len(matched) {
		end := start + pg.Limit
		if end > len(matched) {
			end = len(matched)
		}
		res.Data = matched[start:end]
	}
	return res, nil
}

func orderBy(matched []*models.Property, s Sort) {
	var key func(*models.Property) float64
	switch s.Key {
	case SortByPrice:
		key = func(p *models.Property) float64 { return p.MonthlyAmount() }
	case SortByRating:
		key = func(p *models.Property) float64 { return p.Rating }
	case SortByArea:
		key = func(p *models.Property) float64 { return p.AreaSqFt }
	default:
		return
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if s.Desc {
			return key(matched[i]) > key(matched[j])
		}
		return key(matched[i]) < key(matched[j])
	})
}

func aggregate(matched []*models.Property) Stats {
	if len(matched) == 0 {
		return Stats{}
	}
	prices := make(stats.Float64Data, len(matched))
	ratings := make(stats.Float64Data, len(matched))
	for i, p := range matched {
		prices[i] = p.MonthlyAmount()
		ratings[i] = p.Rating
	}

	// stats only errors on empty input, which is guarded above.
	minPrice, _ := stats.Min(prices)
	maxPrice, _ := stats.Max(prices)
	avgRating, _ := stats.Mean(ratings)

	return Stats{
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		AvgRating: avgRating,
		Count:     len(matched),
	}
}
