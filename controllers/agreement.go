package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mvk-codes/rental_marketplace/backend/models"
	"github.com/mvk-codes/rental_marketplace/backend/store"
	"github.com/sirupsen/logrus"
)

func CreateAgreement(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := userID(r)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var agreement models.RentalAgreement
		if err := json.NewDecoder(r.Body).Decode(&agreement); err != nil {
			logrus.WithError(err).Warn("Invalid agreement payload")
			http.Error(w, "Invalid agreement payload", http.StatusBadRequest)
			return
		}
		agreement.TenantID = tenant

		if err := s.CreateAgreement(r.Context(), &agreement); err != nil {
			writeStoreError(w, err, "Failed to create agreement")
			return
		}

		writeJSON(w, http.StatusCreated, agreement)
	}
}

func UpdateAgreementStatus(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["code"]

		var payload struct {
			Status models.AgreementStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Status == "" {
			http.Error(w, "status is required", http.StatusBadRequest)
			return
		}

		agreement, err := s.UpdateAgreementStatus(r.Context(), code, payload.Status)
		if err != nil {
			writeStoreError(w, err, "Agreement status update failed")
			return
		}
		writeJSON(w, http.StatusOK, agreement)
	}
}

// ListAgreements returns both sides: agreements where the caller is the
// tenant and where the caller is the owner (dashboard view).
func ListAgreements(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := userID(r)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}
		agreements, err := s.ListAgreementsByUser(r.Context(), user)
		if err != nil {
			writeStoreError(w, err, "Agreement listing failed")
			return
		}
		writeData(w, http.StatusOK, "Fetched agreements", agreements)
	}
}
