package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mvk-codes/rental_marketplace/backend/models"
	"github.com/mvk-codes/rental_marketplace/backend/store"
	"github.com/sirupsen/logrus"
)

func FileComplaint(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := userID(r)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var complaint models.Complaint
		if err := json.NewDecoder(r.Body).Decode(&complaint); err != nil {
			logrus.WithError(err).Warn("Invalid complaint payload")
			http.Error(w, "Invalid complaint payload", http.StatusBadRequest)
			return
		}
		complaint.TenantID = tenant

		if err := s.FileComplaint(r.Context(), &complaint); err != nil {
			writeStoreError(w, err, "Failed to file complaint")
			return
		}
		writeJSON(w, http.StatusCreated, complaint)
	}
}

func UpdateComplaintStatus(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["code"]

		var payload struct {
			Status models.ComplaintStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Status == "" {
			http.Error(w, "status is required", http.StatusBadRequest)
			return
		}

		complaint, err := s.UpdateComplaintStatus(r.Context(), code, payload.Status)
		if err != nil {
			writeStoreError(w, err, "Complaint status update failed")
			return
		}
		writeJSON(w, http.StatusOK, complaint)
	}
}

func ListComplaints(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyCode := mux.Vars(r)["code"]
		complaints, err := s.ListComplaintsByProperty(r.Context(), propertyCode)
		if err != nil {
			writeStoreError(w, err, "Complaint listing failed")
			return
		}
		writeData(w, http.StatusOK, "Fetched complaints", complaints)
	}
}
