// Package server wires the gin engine, middleware, and routes, and runs
// the HTTP server with graceful shutdown.
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

	"github.com/gin-gonic/gin"
	"github.com/splycehq/splyce-backend/internal/config"
	"github.com/splycehq/splyce-backend/internal/handler"
	"github.com/splycehq/splyce-backend/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// shutdownTimeout bounds how long in-flight requests get to drain.
const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server for the bill-splitting service.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *config.Config
	logger     *slog.Logger
}

// NewServer creates and configures a new server instance.
func NewServer(cfg *config.Config, logger *slog.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.RequestResponseLogger(logger))

	server := &Server{
		router: router,
		config: cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	server.setupBaseRoutes()

	return server
}

// setupBaseRoutes configures the routes that exist regardless of
// handlers: health check and API docs.
func (s *Server) setupBaseRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Swagger UI at /api-docs/index.html
	swaggerHandler := ginSwagger.WrapHandler(swaggerFiles.Handler)
	s.router.GET("/api-docs/*any", swaggerHandler)
	s.router.GET("/api-docs", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/api-docs/index.html")
	})
}

// RegisterRoutes mounts the application API under /api.
func (s *Server) RegisterRoutes(receipts *handler.ReceiptHandler, reviews *handler.ReviewHandler, splits *handler.SplitHandler, historyH *handler.HistoryHandler) {
	api := s.router.Group("/api")

	api.POST("/parse-receipt", receipts.ParseReceipt)
	api.POST("/review-receipt", reviews.ReviewReceipt)

	api.POST("/splits", splits.CreateSplit)
	api.GET("/splits/:splitId", splits.GetSplit)
	api.POST("/splits/:splitId/toggle", splits.ToggleClaim)
	api.GET("/splits/:splitId/summary", splits.GetSummary)
	api.POST("/splits/:splitId/finalize", splits.FinalizeSplit)

	api.GET("/history", historyH.ListHistory)
	api.DELETE("/history/:receiptId", historyH.RemoveReceipt)
	api.DELETE("/history", historyH.ClearHistory)
}

// Router returns the gin router, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start begins listening for requests and blocks until an interrupt
// signal arrives, then drains gracefully.
func (s *Server) Start() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s.logger.Info("server listening", "port", s.config.Port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info("server exited gracefully")
	return nil
}

// Shutdown stops the server without waiting for a signal.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
