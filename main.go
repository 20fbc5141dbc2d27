// Command credstore runs the credential-management and session-authentication
// service: it wires configuration, the Postgres pool, migrations, the
// credential store, the authentication service, and the HTTP router, then
// serves until interrupted.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/user/credstore-go/auth"
	"github.com/user/credstore-go/config"
	"github.com/user/credstore-go/db"
	"github.com/user/credstore-go/password"
	"github.com/user/credstore-go/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.Pool)
	if err != nil {
		log.Fatalf("failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.Pool, "./migrations"); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	hasher, err := password.NewHasher(cfg.Auth.Pepper, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("failed to construct password hasher: %v", err)
	}

	repo := users.NewPostgresRepository(pool)
	issuer := auth.NewTokenIssuer(cfg.Auth)

	userService := users.NewService(repo, hasher)
	userHandlers := users.NewHandlers(userService, issuer)

	authService := auth.NewService(repo, hasher)
	authHandlers := auth.NewHandlers(authService, issuer)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("This is API"))
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandlers.HandleCreate())
		r.Post("/authenticate", authHandlers.HandleAuthenticate())

		// Protected operations: the guard verifies the bearer token, and
		// the ownership check gates mutation of a specific record.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(issuer))

			r.Get("/", userHandlers.HandleList())
			r.Get("/{id}", userHandlers.HandleGet())
			r.With(auth.RequireOwner("id")).Put("/{id}", userHandlers.HandleUpdate())
			r.With(auth.RequireOwner("id")).Delete("/{id}", userHandlers.HandleDelete())
		})
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}
	log.Println("server stopped gracefully")
}
