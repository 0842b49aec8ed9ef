package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mvaldes/memberhub/internal/auth"
	"github.com/mvaldes/memberhub/internal/config"
	"github.com/mvaldes/memberhub/internal/middleware"
	"github.com/mvaldes/memberhub/internal/store"
	"github.com/mvaldes/memberhub/internal/web"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// ── User store ───────────────────────────────────────────
	var users store.UserStore
	switch cfg.UserStore {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("postgres connect: %v", err)
		}
		defer pool.Close()
		pg := store.NewPostgresUserStore(pool)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatalf("postgres migrate: %v", err)
		}
		users = pg
	case "memory":
		users = store.NewMemoryUserStore()
	default:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatalf("mongo connect: %v", err)
		}
		defer client.Disconnect(ctx)
		users = store.NewMongoUserStore(client.Database(cfg.MongoDB))
	}

	// ── Sessions ─────────────────────────────────────────────
	var sessions auth.SessionStore
	if cfg.UserStore == "memory" {
		sessions = auth.NewMemorySessionStore(cfg.SessionTTL)
	} else {
		rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		defer rdb.Close()
		sessions = auth.NewRedisSessionStore(rdb, cfg.SessionTTL)
	}

	// ── Handlers ─────────────────────────────────────────────
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	authHandler := auth.NewHandler(users, sessions, hasher, cfg.SessionTTL)
	pageHandler := web.NewHandler(users)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.With(middleware.LoadSession(sessions)).Get("/", pageHandler.Home)
	r.Get("/signup", authHandler.SignupForm)
	r.Post("/signup", authHandler.Signup)
	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(sessions))
		r.Get("/members", pageHandler.Members)
		r.Get("/admin", pageHandler.Admin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(sessions))
		r.Use(middleware.RequireAdmin(sessions))
		r.Get("/promote/{id}", pageHandler.Promote)
		r.Get("/demote/{id}", pageHandler.Demote)
	})

	r.NotFound(pageHandler.NotFound)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("memberhub listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
