package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - wires the game routes.
func NewRouter(logger *slog.Logger, uGame uGame) http.Handler {
	h := NewHandlers(logger, uGame)

	r := chi.NewRouter()
	r.Use(requestLogger(logger))

	r.Get("/ping", pingHandler)
	r.Route("/api/game", func(r chi.Router) {
		r.Get("/", h.State)
		r.Post("/moves", h.Play)
		r.Post("/jump", h.JumpTo)
		r.Post("/save", h.Save)
		r.Post("/load", h.Load)
	})

	return r
}

// Start - serves the router on port until ctx is cancelled.
// writeTimeout must leave room for the save delay.
func Start(ctx context.Context, port string, handler http.Handler, writeTimeout time.Duration) error {
	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", port, err)
	}

	return Serve(ctx, ln, handler, writeTimeout)
}

// Serve - serves on ln until ctx is cancelled, then waits for in-flight
// requests to finish before returning.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, writeTimeout time.Duration) error {
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  30 * time.Second,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		serveErrCh <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErrCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout+writeTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if err := <-serveErrCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	return nil
}
