// Package api exposes the item catalog and the item codec over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/swaggo/swag"
	"gopkg.in/yaml.v3"
)

const (
	catalogStatsInterval = 30 * time.Second
	shutdownTimeout      = 10 * time.Second
)

// NewRouter builds the HTTP routes for server. gatherer backs /metrics.
func NewRouter(server *Server, gatherer prometheus.Gatherer) http.Handler {
	metrics := server.metrics

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(server.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"ETag", "X-Item-Format"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", serveSwaggerDoc)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(server.config.APIKey)))

		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Catalog
		r.Post("/items", metrics.InstrumentHandler("POST", "/api/v1/items", server.handleCreateItem))
		r.Get("/items", metrics.InstrumentHandler("GET", "/api/v1/items", server.handleListItems))
		r.Get("/items/{id}", metrics.InstrumentHandler("GET", "/api/v1/items/{id}", server.handleGetItem))
		r.Put("/items/{id}", metrics.InstrumentHandler("PUT", "/api/v1/items/{id}", server.handleUpdateItem))
		r.Delete("/items/{id}", metrics.InstrumentHandler("DELETE", "/api/v1/items/{id}", server.handleDeleteItem))

		// Stateless codec
		r.Post("/codec/encode", metrics.InstrumentHandler("POST", "/api/v1/codec/encode", server.handleEncode))
		r.Post("/codec/decode", metrics.InstrumentHandler("POST", "/api/v1/codec/decode", server.handleDecode))
	})

	return r
}

// serveSwaggerDoc serves the registered API description as JSON or YAML
func serveSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to generate Swagger documentation: %v", err), http.StatusInternalServerError)
		return
	}

	switch chi.URLParam(r, "*") {
	case "doc.json", "swagger.json":
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	case "swagger.yaml":
		var node yaml.Node
		if err := yaml.Unmarshal([]byte(doc), &node); err != nil {
			sendError(w, fmt.Sprintf("Failed to convert Swagger documentation: %v", err), http.StatusInternalServerError)
			return
		}
		out, err := yaml.Marshal(&node)
		if err != nil {
			sendError(w, fmt.Sprintf("Failed to convert Swagger documentation: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(out)
	default:
		sendError(w, "Not found", http.StatusNotFound)
	}
}

// StartServer serves the API until ctx is cancelled, then shuts down gracefully
func StartServer(ctx context.Context, catalog IItemCatalog, config ServerConfig, log logrus.FieldLogger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := NewMetrics(registry)

	server := NewServer(catalog, config, metrics, log)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Bind, config.Port),
		Handler:           NewRouter(server, registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start background metrics updater
	go server.startMetricsUpdater(ctx, catalogStatsInterval)

	errCh := make(chan error, 1)
	go func() {
		server.log.WithField("addr", httpServer.Addr).Info("starting itemcodec REST API server")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	server.log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
