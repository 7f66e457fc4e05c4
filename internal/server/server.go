package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/novatale/armory/internal/catalog"
	"github.com/novatale/armory/internal/handler"
	"github.com/novatale/armory/internal/inventory"
	"github.com/novatale/armory/internal/logger"
	"github.com/novatale/armory/internal/metrics"
	"github.com/novatale/armory/internal/player"
)

type Server struct {
	httpServer       *http.Server
	playerService    player.Service
	inventoryService inventory.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, storageHealth handler.HealthChecker, cat *catalog.Catalog, playerService player.Service, inventoryService inventory.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(storageHealth))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Item catalog routes
		r.Route("/items", func(r chi.Router) {
			r.Get("/", handler.HandleGetItems(cat))
			r.Get("/lookup", handler.HandleGetItem(cat))
		})

		r.Get("/players", handler.HandleListPlayers(playerService))

		// Player routes
		r.Route("/player", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterPlayer(playerService))
			r.Post("/login", handler.HandleLogin(playerService))
			r.Post("/logout", handler.HandleLogout(playerService))
			r.Post("/delete", handler.HandleDeletePlayer(playerService))
			r.Get("/profile", handler.HandleGetProfile(playerService))
			r.Get("/stats", handler.HandleGetStats(playerService))
			r.Post("/experience", handler.HandleAddExperience(playerService))

			r.Route("/gold", func(r chi.Router) {
				r.Post("/add", handler.HandleAddGold(playerService))
				r.Post("/spend", handler.HandleSpendGold(playerService))
			})

			r.Get("/inventory", handler.HandleGetInventory(inventoryService))
			r.Get("/inventory/counts", handler.HandleGetInventoryCounts(inventoryService))
			r.Get("/equipment", handler.HandleGetEquipment(inventoryService))

			r.Route("/item", func(r chi.Router) {
				r.Post("/add", handler.HandleAddItem(inventoryService))
				r.Post("/remove", handler.HandleRemoveItem(inventoryService))
				r.Post("/equip", handler.HandleEquipItem(inventoryService))
				r.Post("/unequip", handler.HandleUnequipItem(inventoryService))
				r.Post("/use", handler.HandleUseItem(inventoryService))
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		playerService:    playerService,
		inventoryService: inventoryService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
