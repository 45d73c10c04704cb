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

func AddRoom(s store.Store, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := userID(r)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}
		propertyCode := mux.Vars(r)["code"]

		property, err := s.GetPropertyByCode(r.Context(), propertyCode)
		if err != nil {
			writeStoreError(w, err, "Property lookup failed")
			return
		}
		if property.OwnerID != owner {
			http.Error(w, "Not the property owner", http.StatusForbidden)
			return
		}

		var room models.Room
		if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
			logrus.WithError(err).Warn("Invalid room payload")
			http.Error(w, "Invalid room payload", http.StatusBadRequest)
			return
		}
		room.PropertyCode = propertyCode

		if err := s.AddRoom(r.Context(), &room); err != nil {
			writeStoreError(w, err, "Failed to add room")
			return
		}

		go invalidateSearchCache(redisClient)

		writeJSON(w, http.StatusCreated, room)
	}
}

func ListRooms(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyCode := mux.Vars(r)["code"]
		rooms, err := s.ListRooms(r.Context(), propertyCode)
		if err != nil {
			writeStoreError(w, err, "Room listing failed")
			return
		}
		writeData(w, http.StatusOK, "Fetched rooms", rooms)
	}
}

func UpdateRoomStatus(s store.Store, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomCode := mux.Vars(r)["code"]

		var payload struct {
			Status models.RoomStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Status == "" {
			http.Error(w, "status is required", http.StatusBadRequest)
			return
		}

		room, err := s.UpdateRoomStatus(r.Context(), roomCode, payload.Status)
		if err != nil {
			writeStoreError(w, err, "Room status update failed")
			return
		}

		// Occupancy feeds property availability, which is searchable.
		go invalidateSearchCache(redisClient)

		writeJSON(w, http.StatusOK, room)
	}
}
