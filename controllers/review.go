package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mvk-codes/rental_marketplace/backend/models"
	"github.com/mvk-codes/rental_marketplace/backend/store"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func AddReview(s store.Store, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userID(r)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}
		propertyCode := mux.Vars(r)["code"]

		var review models.Review
		if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
			logrus.WithError(err).Warn("Invalid review payload")
			http.Error(w, "Invalid review payload", http.StatusBadRequest)
			return
		}
		review.PropertyCode = propertyCode
		review.UserID = user

		if err := s.AddReview(r.Context(), &review); err != nil {
			writeStoreError(w, err, "Failed to add review")
			return
		}

		// Aggregate ratings are part of search results.
		go invalidateSearchCache(redisClient)

		writeJSON(w, http.StatusCreated, review)
	}
}

func ListReviews(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyCode := mux.Vars(r)["code"]
		reviews, err := s.ListReviews(r.Context(), propertyCode)
		if err != nil {
			writeStoreError(w, err, "Review listing failed")
			return
		}
		writeData(w, http.StatusOK, "Fetched reviews", reviews)
	}
}
