package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/mvk-codes/rental_marketplace/backend/models"
	"github.com/mvk-codes/rental_marketplace/backend/schemas"
	"github.com/mvk-codes/rental_marketplace/backend/search"
	"github.com/mvk-codes/rental_marketplace/backend/store"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const searchCacheTTL = 10 * time.Minute

func CreateProperty(s store.Store, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := userID(r)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		if err := schemas.Validate(schemas.PropertyCreate, body); err != nil {
			logrus.WithError(err).Warn("Property payload failed schema validation")
			http.Error(w, "Invalid property payload: "+err.Error(), http.StatusBadRequest)
			return
		}

		var property models.Property
		if err := json.Unmarshal(body, &property); err != nil {
			logrus.WithError(err).Warn("Invalid request body")
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		property.Code = ""
		property.OwnerID = owner
		property.IsArchived = false
		property.Rating = 0
		property.ReviewCount = 0

		if err := s.CreateProperty(r.Context(), &property); err != nil {
			writeStoreError(w, err, "Failed to create property")
			return
		}

		go invalidateSearchCache(redisClient)

		writeJSON(w, http.StatusCreated, property)
	}
}

func SearchProperties(s store.Store, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filters, pagination, sortOrder, err := parseSearchQuery(query)
		if err != nil {
			logrus.WithError(err).Warn("Bad search query")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		cacheKey := searchCacheKey(query)
		if redisClient != nil {
			cached, err := redisClient.Get(r.Context(), cacheKey).Result()
			if err == nil {
				logrus.WithField("key", cacheKey).Debug("Search cache hit")
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(cached))
				return
			}
			if err != redis.Nil {
				logrus.WithError(err).Warn("Redis GET failed")
			}
		}

		result, err := s.SearchProperties(r.Context(), filters, pagination, sortOrder)
		if err != nil {
			writeStoreError(w, err, "Search failed")
			return
		}

		resultBytes, err := json.Marshal(result)
		if err != nil {
			logrus.WithError(err).Error("Failed to serialize search result")
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}

		if redisClient != nil {
			if err := redisClient.Set(r.Context(), cacheKey, resultBytes, searchCacheTTL).Err(); err != nil {
				logrus.WithError(err).WithField("key", cacheKey).Warn("Failed to cache search result")
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(resultBytes)
	}
}

func GetProperty(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["code"]
		property, err := s.GetPropertyByCode(r.Context(), code)
		if err != nil {
			writeStoreError(w, err, "Property lookup failed")
			return
		}
		writeJSON(w, http.StatusOK, property)
	}
}

func GetSimilarProperties(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["code"]

		limit := 5
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		ranking, err := s.GetSimilarProperties(r.Context(), code, limit)
		if err != nil {
			writeStoreError(w, err, "Similarity ranking failed")
			return
		}
		writeJSON(w, http.StatusOK, ranking)
	}
}

func UpdateProperty(s store.Store, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := userID(r)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}
		code := mux.Vars(r)["code"]

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		if err := schemas.Validate(schemas.PropertyUpdate, body); err != nil {
			logrus.WithError(err).Warn("Update payload failed schema validation")
			http.Error(w, "Invalid update payload: "+err.Error(), http.StatusBadRequest)
			return
		}

		var upd store.PropertyUpdate
		if err := json.Unmarshal(body, &upd); err != nil {
			http.Error(w, "Invalid update data", http.StatusBadRequest)
			return
		}

		property, err := s.UpdateProperty(r.Context(), code, owner, upd)
		if err != nil {
			writeStoreError(w, err, "Update failed")
			return
		}

		go invalidateSearchCache(redisClient)

		writeJSON(w, http.StatusOK, property)
	}
}

// ArchiveProperty soft-deletes: the listing drops out of search but stays
// reachable for agreements and history.
func ArchiveProperty(s store.Store, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := userID(r)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}
		code := mux.Vars(r)["code"]

		if err := s.ArchiveProperty(r.Context(), code, owner); err != nil {
			writeStoreError(w, err, "Archive failed")
			return
		}

		go invalidateSearchCache(redisClient)

		writeData(w, http.StatusOK, "Property archived", nil)
	}
}

func ListOwnerProperties(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := userID(r)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}
		properties, err := s.ListPropertiesByOwner(r.Context(), owner)
		if err != nil {
			writeStoreError(w, err, "Owner listing failed")
			return
		}
		writeData(w, http.StatusOK, "Fetched owner properties", properties)
	}
}

// parseSearchQuery maps the public query surface onto the core's types.
// Unknown parameters are ignored; malformed values on known parameters are
// rejected rather than silently dropped.
func parseSearchQuery(query url.Values) (search.Filters, search.Pagination, search.Sort, error) {
	filters := search.Filters{
		City:         query.Get("city"),
		PropertyType: query.Get("propertyType"),
		BHKType:      query.Get("bhkType"),
		Furnishing:   query.Get("furnishing"),
		Availability: models.Availability(query.Get("availability")),
	}

	parseAmount := func(key string) (*float64, error) {
		raw := query.Get(key)
		if raw == "" {
			return nil, nil
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &badParamError{key, raw}
		}
		return &val, nil
	}

	var err error
	if filters.MinAmount, err = parseAmount("minAmount"); err != nil {
		return filters, search.Pagination{}, search.Sort{}, err
	}
	if filters.MaxAmount, err = parseAmount("maxAmount"); err != nil {
		return filters, search.Pagination{}, search.Sort{}, err
	}

	pagination := search.Pagination{Page: 1, Limit: 10}
	if raw := query.Get("page"); raw != "" {
		if pagination.Page, err = strconv.Atoi(raw); err != nil {
			return filters, pagination, search.Sort{}, &badParamError{"page", raw}
		}
	}
	if raw := query.Get("limit"); raw != "" {
		if pagination.Limit, err = strconv.Atoi(raw); err != nil {
			return filters, pagination, search.Sort{}, &badParamError{"limit", raw}
		}
	}

	sortOrder := search.Sort{
		Key:  query.Get("sortBy"),
		Desc: strings.EqualFold(query.Get("sortDir"), "desc"),
	}
	return filters, pagination, sortOrder, nil
}

type badParamError struct {
	key, value string
}

func (e *badParamError) Error() string {
	return "invalid value " + strconv.Quote(e.value) + " for parameter " + e.key
}

// searchCacheKey hashes the sorted query parameters so equivalent searches
// share a cache entry regardless of parameter order. Results carry nothing
// user-specific, so the entry is shared across users rather than keyed per
// caller.
func searchCacheKey(queryParams url.Values) string {
	keys := make([]string, 0, len(queryParams))
	for k := range queryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		values := queryParams[key]
		sort.Strings(values)
		for _, val := range values {
			sb.WriteString(key)
			sb.WriteString("=")
			sb.WriteString(val)
			sb.WriteString("&")
		}
	}
	rawKey := strings.TrimSuffix(sb.String(), "&")

	sum := sha256.Sum256([]byte(rawKey))
	return "search:" + hex.EncodeToString(sum[:])
}

// invalidateSearchCache drops every cached search page after any mutation
// that can change search results.
func invalidateSearchCache(redisClient *redis.Client) {
	if redisClient == nil {
		return
	}
	ctx := context.Background()
	const scanPattern = "search:*"
	const scanCount = 100

	var keysToDelete []string
	var cursor uint64
	var err error

	for {
		var currentKeys []string
		currentKeys, cursor, err = redisClient.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			logrus.WithError(err).Warn("Redis SCAN failed during cache invalidation")
			return
		}
		keysToDelete = append(keysToDelete, currentKeys...)
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return
	}

	pipe := redisClient.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logrus.WithError(err).Warn("Failed to delete search cache keys")
		return
	}
	logrus.WithField("keys", len(keysToDelete)).Info("Search cache invalidated")
}
