package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/mvk-codes/rental_marketplace/backend/config"
	"github.com/mvk-codes/rental_marketplace/backend/routes"
	"github.com/mvk-codes/rental_marketplace/backend/store"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func loadEnv() {
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("Error loading .env file: %v", err)
	}
}

// buildStore picks the data adapter exactly once. USE_MOCK_DATA serves the
// seeded in-memory store; everything downstream only sees the interface.
func buildStore() (store.Store, func()) {
	if useMock, _ := strconv.ParseBool(os.Getenv("USE_MOCK_DATA")); useMock {
		logrus.Info("USE_MOCK_DATA set, serving seeded in-memory data")
		mem := store.NewMemoryStore()
		if err := store.Seed(context.Background(), mem); err != nil {
			logrus.Fatalf("Failed to seed mock store: %v", err)
		}
		return mem, func() {}
	}

	client, err := config.ConnectDB()
	if err != nil {
		logrus.Fatalf("Failed to connect to the database: %v", err)
	}
	return store.NewMongoStore(config.Database(client)), func() {
		config.CloseDBConnection(client)
	}
}

func setupRouter(s store.Store, redisClient *redis.Client) *mux.Router {
	router := mux.NewRouter()
	routes.Routes(router, s, redisClient)
	return router
}

func main() {
	loadEnv()

	dataStore, closeStore := buildStore()
	defer closeStore()

	redisClient := config.InitRedis()

	router := setupRouter(dataStore, redisClient)

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := corsOptions.Handler(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logrus.Infof("Server running on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Error starting server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	<-sigCh

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.Fatalf("Error during server shutdown: %v", err)
	}
	logrus.Info("Server gracefully stopped")
}
