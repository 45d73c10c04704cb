package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/mvk-codes/rental_marketplace/backend/models"
	"github.com/mvk-codes/rental_marketplace/backend/store"
	"github.com/mvk-codes/rental_marketplace/backend/utils"
	"github.com/sirupsen/logrus"
)

type Response struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

func RegisterUser(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user models.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			logrus.WithError(err).Warn("Error decoding user data")
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}
		if user.UserID == "" || user.Email == "" || user.Password == "" {
			http.Error(w, "userID, email and password are required", http.StatusBadRequest)
			return
		}
		if user.Role == "" {
			user.Role = models.RoleTenant
		}

		if _, err := s.GetUserByID(r.Context(), user.UserID); err == nil {
			logrus.WithField("userID", user.UserID).Warn("UserID already exists")
			http.Error(w, "UserID already exists", http.StatusConflict)
			return
		}
		if _, err := s.GetUserByEmail(r.Context(), user.Email); err == nil {
			logrus.WithField("email", user.Email).Warn("Email already exists")
			http.Error(w, "Email already exists", http.StatusConflict)
			return
		}

		hashedPwd, err := utils.HashPassword(user.Password)
		if err != nil {
			logrus.WithError(err).Error("Error hashing password")
			http.Error(w, "Failed to hash password", http.StatusInternalServerError)
			return
		}
		user.Password = hashedPwd

		if err := s.CreateUser(r.Context(), &user); err != nil {
			writeStoreError(w, err, "Error creating user")
			return
		}

		writeJSON(w, http.StatusCreated, Response{Message: "User registered successfully"})
	}
}

func LoginUser(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials models.User
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			logrus.WithError(err).Warn("Error decoding login credentials")
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		dbUser, err := s.GetUserByID(r.Context(), credentials.UserID)
		if err != nil {
			logrus.WithField("userID", credentials.UserID).Warn("User not found")
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		if !utils.CheckPasswordHash(credentials.Password, dbUser.Password) {
			logrus.WithField("userID", credentials.UserID).Warn("Invalid credentials")
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := utils.GenerateJWT(dbUser.UserID, string(dbUser.Role))
		if err != nil {
			logrus.WithError(err).Error("Error generating JWT token")
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, Response{Message: "Login successful", Token: token})
	}
}
