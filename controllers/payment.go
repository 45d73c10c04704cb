package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mvk-codes/rental_marketplace/backend/models"
	"github.com/mvk-codes/rental_marketplace/backend/store"
	"github.com/sirupsen/logrus"
)

func CreatePayment(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agreementCode := mux.Vars(r)["code"]

		var payment models.RentPayment
		if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
			logrus.WithError(err).Warn("Invalid payment payload")
			http.Error(w, "Invalid payment payload", http.StatusBadRequest)
			return
		}
		payment.AgreementCode = agreementCode

		if err := s.CreatePayment(r.Context(), &payment); err != nil {
			writeStoreError(w, err, "Failed to create payment")
			return
		}
		writeJSON(w, http.StatusCreated, payment)
	}
}

func PayPayment(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := mux.Vars(r)["code"]

		payment, err := s.PayPayment(r.Context(), code, time.Now())
		if err != nil {
			writeStoreError(w, err, "Payment failed")
			return
		}
		writeJSON(w, http.StatusOK, payment)
	}
}

func ListPayments(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agreementCode := mux.Vars(r)["code"]
		payments, err := s.ListPaymentsByAgreement(r.Context(), agreementCode)
		if err != nil {
			writeStoreError(w, err, "Payment listing failed")
			return
		}
		writeData(w, http.StatusOK, "Fetched payments", payments)
	}
}

// SweepOverduePayments flips every pending payment past its due date to
// OVERDUE. Exposed as an endpoint so an external cron can drive it.
func SweepOverduePayments(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		marked, err := s.MarkOverduePayments(r.Context(), time.Now())
		if err != nil {
			writeStoreError(w, err, "Overdue sweep failed")
			return
		}
		logrus.WithField("marked", marked).Info("Overdue payment sweep completed")
		writeData(w, http.StatusOK, "Overdue sweep completed", map[string]int{"marked": marked})
	}
}
