package routes

import (
	"github.com/gorilla/mux"
	"github.com/mvk-codes/rental_marketplace/backend/controllers"
	"github.com/mvk-codes/rental_marketplace/backend/middleware"
	"github.com/mvk-codes/rental_marketplace/backend/store"
	"github.com/redis/go-redis/v9"
)

func Routes(router *mux.Router, s store.Store, redisClient *redis.Client) {
	// Auth routes
	router.HandleFunc("/register", controllers.RegisterUser(s)).Methods("POST")
	router.HandleFunc("/login", controllers.LoginUser(s)).Methods("POST")

	// Routes that require authentication
	authenticated := router.PathPrefix("/api").Subrouter()
	authenticated.Use(middleware.AuthMiddleware)

	// Property routes
	authenticated.HandleFunc("/properties", controllers.CreateProperty(s, redisClient)).Methods("POST")
	authenticated.HandleFunc("/properties", controllers.SearchProperties(s, redisClient)).Methods("GET")
	authenticated.HandleFunc("/properties/mine", controllers.ListOwnerProperties(s)).Methods("GET")
	authenticated.HandleFunc("/properties/{code}", controllers.GetProperty(s)).Methods("GET")
	authenticated.HandleFunc("/properties/{code}", controllers.UpdateProperty(s, redisClient)).Methods("PUT")
	authenticated.HandleFunc("/properties/{code}", controllers.ArchiveProperty(s, redisClient)).Methods("DELETE")
	authenticated.HandleFunc("/properties/{code}/similar", controllers.GetSimilarProperties(s)).Methods("GET")

	// Room routes
	authenticated.HandleFunc("/properties/{code}/rooms", controllers.AddRoom(s, redisClient)).Methods("POST")
	authenticated.HandleFunc("/properties/{code}/rooms", controllers.ListRooms(s)).Methods("GET")
	authenticated.HandleFunc("/rooms/{code}/status", controllers.UpdateRoomStatus(s, redisClient)).Methods("PATCH")

	// Review routes
	authenticated.HandleFunc("/properties/{code}/reviews", controllers.AddReview(s, redisClient)).Methods("POST")
	authenticated.HandleFunc("/properties/{code}/reviews", controllers.ListReviews(s)).Methods("GET")

	// Favorites routes
	authenticated.HandleFunc("/favorites", controllers.AddFavorite(s)).Methods("POST")
	authenticated.HandleFunc("/favorites", controllers.GetFavorites(s)).Methods("GET")
	authenticated.HandleFunc("/favorites/{code}", controllers.DeleteFavorite(s)).Methods("DELETE")

	// Complaint routes
	authenticated.HandleFunc("/complaints", controllers.FileComplaint(s)).Methods("POST")
	authenticated.HandleFunc("/complaints/{code}/status", controllers.UpdateComplaintStatus(s)).Methods("PATCH")
	authenticated.HandleFunc("/properties/{code}/complaints", controllers.ListComplaints(s)).Methods("GET")

	// Agreement and payment routes
	authenticated.HandleFunc("/agreements", controllers.CreateAgreement(s)).Methods("POST")
	authenticated.HandleFunc("/agreements", controllers.ListAgreements(s)).Methods("GET")
	authenticated.HandleFunc("/agreements/{code}/status", controllers.UpdateAgreementStatus(s)).Methods("PATCH")
	authenticated.HandleFunc("/agreements/{code}/payments", controllers.CreatePayment(s)).Methods("POST")
	authenticated.HandleFunc("/agreements/{code}/payments", controllers.ListPayments(s)).Methods("GET")
	authenticated.HandleFunc("/payments/{code}/pay", controllers.PayPayment(s)).Methods("POST")
	authenticated.HandleFunc("/payments/overdue-sweep", controllers.SweepOverduePayments(s)).Methods("POST")
}
