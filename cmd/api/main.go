package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/REFATBHUYAN/easydrop-api/internal/auth"
	"github.com/REFATBHUYAN/easydrop-api/internal/config"
	"github.com/REFATBHUYAN/easydrop-api/internal/handler"
	"github.com/REFATBHUYAN/easydrop-api/internal/middleware"
	"github.com/REFATBHUYAN/easydrop-api/internal/repository"
	"github.com/REFATBHUYAN/easydrop-api/internal/service"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	svc := service.NewService(repo, tokens, logger)
	h := handler.NewHandler(svc, logger)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/api/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", h.Logout).Methods("POST")
	// Protected routes
	todoRouter := r.PathPrefix("/api/todos").Subrouter()
	todoRouter.Use(middleware.AuthMiddleware(tokens))
	todoRouter.HandleFunc("", h.CreateTodo).Methods("POST")
	todoRouter.HandleFunc("", h.ListTodos).Methods("GET")
	todoRouter.HandleFunc("/{id}", h.GetTodo).Methods("GET")
	todoRouter.HandleFunc("/{id}", h.UpdateTodo).Methods("PUT")
	todoRouter.HandleFunc("/{id}", h.DeleteTodo).Methods("DELETE")

	// CORS for the browser frontend
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      c.Handler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
