package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mvk-codes/rental_marketplace/backend/models"
	"github.com/mvk-codes/rental_marketplace/backend/search"
	"github.com/mvk-codes/rental_marketplace/backend/store"
	"github.com/sirupsen/logrus"
)

type ContextKey string

const (
	UserIDKey   = ContextKey("userID")
	UserRoleKey = ContextKey("userRole")
)

func userID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(UserIDKey).(string)
	return id, ok
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}

func writeData(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, models.APIResponse{Success: true, Message: message, Data: data})
}

// writeStoreError translates facade errors to HTTP statuses; anything not in
// the taxonomy is a 500.
func writeStoreError(w http.ResponseWriter, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, store.ErrInvalidTransition),
		errors.Is(err, store.ErrRoomOccupied),
		errors.Is(err, store.ErrDuplicateReview),
		errors.Is(err, store.ErrDuplicateFavorite):
		status = http.StatusConflict
	case errors.Is(err, store.ErrInvalidInput),
		errors.Is(err, search.ErrInvalidPagination):
		status = http.StatusBadRequest
	}
	logrus.WithError(err).Warn(msg)
	writeJSON(w, status, models.APIResponse{Success: false, Message: err.Error()})
}
