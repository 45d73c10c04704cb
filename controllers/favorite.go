package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mvk-codes/rental_marketplace/backend/store"
	"github.com/sirupsen/logrus"
)

func AddFavorite(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userID(r)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var payload struct {
			PropertyCode string `json:"propertyCode"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.PropertyCode == "" {
			logrus.WithError(err).Warn("Invalid favorite payload")
			http.Error(w, "propertyCode is required", http.StatusBadRequest)
			return
		}

		if err := s.AddFavorite(r.Context(), user, payload.PropertyCode); err != nil {
			writeStoreError(w, err, "Failed to add favorite")
			return
		}
		writeData(w, http.StatusCreated, "Property added to favorites", nil)
	}
}

func GetFavorites(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userID(r)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		properties, err := s.ListFavorites(r.Context(), user)
		if err != nil {
			writeStoreError(w, err, "Failed to fetch favorites")
			return
		}
		writeData(w, http.StatusOK, "Fetched favorite properties", properties)
	}
}

func DeleteFavorite(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userID(r)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}
		propertyCode := mux.Vars(r)["code"]

		if err := s.RemoveFavorite(r.Context(), user, propertyCode); err != nil {
			writeStoreError(w, err, "Failed to remove favorite")
			return
		}
		writeData(w, http.StatusOK, "Property removed from favorites", nil)
	}
}
