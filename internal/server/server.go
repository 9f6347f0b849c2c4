package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bpstudio/backend/internal/config"
	apphttp "github.com/bpstudio/backend/internal/http"
	"github.com/bpstudio/backend/internal/logging"
	"github.com/bpstudio/backend/internal/middleware"
	"github.com/bpstudio/backend/internal/monitoring"
	bpprovider "github.com/bpstudio/backend/internal/providers/blueprint"
	"github.com/bpstudio/backend/internal/service"
	"github.com/bpstudio/backend/internal/transpiler"
	"github.com/bpstudio/backend/internal/ws"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	logger   *logging.Logger
	registry *service.Registry
	httpSrv  *http.Server
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger := logging.FromConfig(cfg.Logging)
	metrics := monitoring.NewMetrics()

	svc := transpiler.NewService(cfg, logger)

	serviceRegistry := service.NewRegistry()
	if err := serviceRegistry.Register(bpprovider.NewProvider(svc)); err != nil {
		return nil, err
	}
	stats := serviceRegistry.Stats()
	logger.Info("registered services",
		zap.Any("total_services", stats["total_services"]),
		zap.Any("total_tools", stats["total_tools"]),
	)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(monitoring.Middleware(metrics))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.FromConfig(cfg.RateLimit)))
	}

	handlers := apphttp.NewHandlers(svc, serviceRegistry, metrics)
	wsHandler := ws.NewHandler(svc)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Blueprint operations
	router.POST("/transpile", handlers.Transpile)
	router.POST("/diff", handlers.Diff)
	router.POST("/symbols/extract", handlers.ExtractSymbols)

	// Service management
	router.GET("/services", handlers.ListServices)
	router.POST("/services/execute", handlers.ExecuteService)

	// WebSocket
	router.GET("/stream", wsHandler.HandleConnection)

	return &Server{
		router:   router,
		logger:   logger,
		registry: serviceRegistry,
	}, nil
}

// Run starts the server and blocks until it stops
func (s *Server) Run(addr string) error {
	s.logger.Info("starting server", zap.String("addr", addr))

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests before stopping
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	s.logger.Info("shutting down server")
	return s.httpSrv.Shutdown(ctx)
}

// Close cleans up resources
func (s *Server) Close() error {
	return s.logger.Sync()
}

// Router exposes the configured routes for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}
