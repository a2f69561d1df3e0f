// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: the JSON-file store, services, handlers,
// and middleware are all created and wired here, in one place. Each layer
// only receives what it needs — services get repository interfaces, not
// the jsonfile store; handlers get services, not repositories.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/students-rooms-api/internal/handler"
	"github.com/sakif/students-rooms-api/internal/middleware"
	"github.com/sakif/students-rooms-api/internal/repository/jsonfile"
	"github.com/sakif/students-rooms-api/internal/service"
)

// Config holds server configuration.
type Config struct {
	Addr    string
	DataDir string
}

// Server represents the HTTP server and all its dependencies.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
}

// New creates a new Server with the given config.
//
// The dependency chain:
//
//	jsonfile.Store → RoomService / StudentService / CombinedService → handlers
//
// Both repositories feed the room and student services: the room service
// needs students for its deletion policy, the student service needs
// rooms for referential checks.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	store, err := jsonfile.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening data store: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}
	s.setupRoutes(store)
	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// MIDDLEWARE ORDER MATTERS: RequestID must run before the logger so the
// log line carries the id; Recoverer runs before everything that could
// panic; the metrics middleware wraps the routed handlers so it can read
// the matched route pattern afterwards.
func (s *Server) setupRoutes(store *jsonfile.Store) {
	metrics := middleware.NewMetrics()

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(metrics.Middleware)

	validate := handler.NewValidator()

	roomService := service.NewRoomService(store.Rooms, store.Students, s.logger)
	studentService := service.NewStudentService(store.Students, store.Rooms, s.logger)
	combinedService := service.NewCombinedService(store.Rooms, store.Students, s.logger)

	roomHandler := handler.NewRoomHandler(roomService, validate, s.logger)
	studentHandler := handler.NewStudentHandler(studentService, validate, s.logger)
	combinedHandler := handler.NewCombinedHandler(combinedService, s.logger)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}` + "\n"))
	})
	s.router.Handle("/metrics", metrics.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/rooms", roomHandler.HandleList)
		r.Post("/rooms", roomHandler.HandleCreate)
		r.Get("/rooms/{id}", roomHandler.HandleGetByID)
		r.Put("/rooms/{id}", roomHandler.HandleUpdate)
		r.Patch("/rooms/{id}", roomHandler.HandleUpdate)
		r.Delete("/rooms/{id}", roomHandler.HandleDelete)
		r.Get("/rooms/{id}/students", roomHandler.HandleStudents)

		r.Get("/students", studentHandler.HandleList)
		r.Post("/students", studentHandler.HandleCreate)
		r.Get("/students/{id}", studentHandler.HandleGetByID)
		r.Put("/students/{id}", studentHandler.HandleUpdate)
		r.Patch("/students/{id}", studentHandler.HandleUpdate)
		r.Delete("/students/{id}", studentHandler.HandleDelete)
		r.Post("/students/{id}/move", studentHandler.HandleMove)

		r.Get("/combined", combinedHandler.HandleList)
	})
}

// Router exposes the configured router, mainly for tests that want to
// drive the full stack through httptest without binding a port.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until shutdown.
//
// GRACEFUL SHUTDOWN: on SIGINT/SIGTERM, stop accepting connections and
// give in-flight requests 30 seconds to finish. There is no database
// connection to close — every mutation persisted before its response
// was sent.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.String("addr", s.config.Addr),
			slog.String("data_dir", s.config.DataDir),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
