package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// Start runs the HTTP server until it fails or ctx is canceled.
func Start(ctx context.Context, logger *slog.Logger, port string, handler *Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(handler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// NewRouter wires the game operations and the liveness probe.
func NewRouter(handler *Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(corsMiddleware)

	router.Get("/ping", handler.Ping)

	router.Route("/games", func(r chi.Router) {
		r.Post("/", handler.CreateGame)
		r.Get("/", handler.ListGames)
		r.Get("/{gameID}", handler.GetGame)
		r.Post("/{gameID}/moves", handler.MakeMove)
		r.Post("/{gameID}/ai-move", handler.AIMove)
	})

	return router
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
