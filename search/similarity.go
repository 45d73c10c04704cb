package search

import (
	"math"
	"sort"
	"strings"

	"github.com/mvk-codes/rental_marketplace/backend/models"
)

// Weights controls the contribution of each attribute to the combined
// similarity score. The default vector sums to 1.0.
type Weights struct {
	Type       float64
	Price      float64
	BHK        float64
	Furnishing float64
	Features   float64
	Distance   float64
	Rating     float64
}

var DefaultWeights = Weights{
	Type:       0.25,
	Price:      0.25,
	BHK:        0.15,
	Furnishing: 0.10,
	Features:   0.15,
	Distance:   0.05,
	Rating:     0.05,
}

// priceBandFactor sets the price-difference cutoff as a fraction of the
// target's monthly amount: a candidate further than 50% away scores zero.
const priceBandFactor = 0.5

// maxRelevantDistanceKm is the radius beyond which two listings are treated
// as unrelated locations.
const maxRelevantDistanceKm = 25.0

type ScoredProperty struct {
	Property *models.Property `json:"property"`
	Score    float64          `json:"score"`
}

// Ranking is the result of a similarity run. Fallback is true when the
// target lacked enough data (no usable amount or no features) for the
// weighted scorer and a categorical-only ranking was used instead; callers
// surface it so the UI can disclose ranking confidence.
type Ranking struct {
	TargetCode string           `json:"targetCode"`
	Candidates []ScoredProperty `json:"candidates"`
	Fallback   bool             `json:"fallback"`
}

// RankSimilar scores every candidate against the target and returns up to
// limit candidates in descending score order. The target itself is excluded
// by code. Equal scores keep the pool's original order. A limit <= 0 means
// no truncation.
func RankSimilar(target *models.Property, pool []*models.Property, limit int, w Weights) *Ranking {
	fallback := target.MonthlyAmount() <= 0 || len(target.Features) == 0

	scored := make([]ScoredProperty, 0, len(pool))
	for _, cand := range pool {
		if cand.Code == target.Code {
			continue
		}
		var score float64
		if fallback {
			score = categoricalScore(target, cand)
		} else {
			score = weightedScore(target, cand, w)
		}
		scored = append(scored, ScoredProperty{Property: cand, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	return &Ranking{TargetCode: target.Code, Candidates: scored, Fallback: fallback}
}

// weightedScore combines per-attribute similarity components in [0,1]. The
// distance term only participates when both sides carry coordinates; its
// weight is then excluded from the normalization so scores stay comparable
// across pools with and without geo data.
func weightedScore(target, cand *models.Property, w Weights) float64 {
	sum := equality(target.Type == cand.Type) * w.Type
	sum += priceSimilarity(target, cand) * w.Price
	sum += equality(target.BHK == cand.BHK) * w.BHK
	sum += equality(target.Furnishing == cand.Furnishing) * w.Furnishing
	sum += featureOverlap(target.Features, cand.Features) * w.Features
	sum += ratingSimilarity(target.Rating, cand.Rating) * w.Rating

	total := w.Type + w.Price + w.BHK + w.Furnishing + w.Features + w.Rating
	if target.HasCoordinates() && cand.HasCoordinates() {
		sum += distanceSimilarity(target.Geo, cand.Geo) * w.Distance
		total += w.Distance
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

// categoricalScore is the fallback ranking: the fraction of categorical
// attributes (type, BHK, furnishing, city) the candidate shares with the
// target.
func categoricalScore(target, cand *models.Property) float64 {
	matches := equality(target.Type == cand.Type)
	matches += equality(target.BHK == cand.BHK)
	matches += equality(target.Furnishing == cand.Furnishing)
	matches += equality(strings.EqualFold(target.City, cand.City))
	return matches / 4
}

func equality(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}

// priceSimilarity is the inverse-normalized amount difference, zero beyond
// priceBandFactor of the target amount.
func priceSimilarity(target, cand *models.Property) float64 {
	base := target.MonthlyAmount()
	band := base * priceBandFactor
	if band <= 0 {
		return 0
	}
	diff := math.Abs(base - cand.MonthlyAmount())
	if diff >= band {
		return 0
	}
	return 1 - diff/band
}

// featureOverlap is the Jaccard index of the two feature sets. Duplicates
// and casing are not meaningful.
func featureOverlap(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, f := range a {
		set[strings.ToLower(f)] = true
	}
	union := len(set)
	intersection := 0
	seen := make(map[string]bool, len(b))
	for _, f := range b {
		key := strings.ToLower(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		if set[key] {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func ratingSimilarity(a, b float64) float64 {
	diff := math.Abs(a-b) / 4 // ratings live on a 1..5 scale
	if diff > 1 {
		diff = 1
	}
	return 1 - diff
}

func distanceSimilarity(a, b *models.GeoPoint) float64 {
	d := haversineKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
	if d >= maxRelevantDistanceKm {
		return 0
	}
	return 1 - d/maxRelevantDistanceKm
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
