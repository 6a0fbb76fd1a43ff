// Package httpapi routes REST paths to the repository and telemetry
// aggregator's reads, handling pagination parsing, id escaping, and
// status-code mapping (spec.md §4.6).
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	explorerlogger "github.com/iroha-explorer/explorer/internal/logger"
	"github.com/iroha-explorer/explorer/internal/store"
	"github.com/iroha-explorer/explorer/internal/telemetry"
)

// Readiness reports whether the ingest supervisor has completed at
// least one bootstrap pass; /api/ready is gated on it (spec.md §4.4).
type Readiness interface {
	Ready() bool
}

type handler struct {
	repo      *store.Repository
	telemetry *telemetry.Aggregator
	ready     Readiness
	logger    *slog.Logger
}

// New builds the configured echo.Echo server (spec.md §4.6).
func New(repo *store.Repository, agg *telemetry.Aggregator, ready Readiness, logger *slog.Logger) *echo.Echo {
	h := &handler{repo: repo, telemetry: agg, ready: ready, logger: logger}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead},
	}))
	e.Use(requestIDMiddleware)
	e.Use(requestLogMiddleware(logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem: "iroha_explorer_api",
		HistogramOptsFunc: func(opts prometheus.HistogramOpts) prometheus.HistogramOpts {
			if opts.Name == "request_duration_seconds" {
				opts.Buckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
			}
			return opts
		},
	}))

	e.GET("/api/health", h.health)
	e.GET("/api/ready", h.ready_)
	e.GET("/metrics", echoprometheus.NewHandler())
	registerDocs(e)

	v1 := e.Group("/api/v1")

	// Every endpoint reading the ingest-populated store is gated on
	// bootstrap having completed at least once (spec.md §7, ChainUnreachable:
	// "surfaces as 503 from ingest-dependent endpoints during bootstrap").
	// Telemetry and peer/status poll peers directly and are not gated.
	storeGroup := v1.Group("", h.requireReady)
	storeGroup.GET("/blocks", h.listBlocks)
	storeGroup.GET("/blocks/:id", h.getBlock)
	storeGroup.GET("/transactions", h.listTransactions)
	storeGroup.GET("/transactions/:hash", h.getTransaction)
	storeGroup.GET("/instructions", h.listInstructions)
	storeGroup.GET("/domains", h.listDomains)
	storeGroup.GET("/domains/:id", h.getDomain)
	storeGroup.GET("/accounts", h.listAccounts)
	storeGroup.GET("/accounts/:id", h.getAccount)
	storeGroup.GET("/assets", h.listAssets)
	storeGroup.GET("/assets/:id", h.getAsset)
	storeGroup.GET("/asset-definitions", h.listAssetDefinitions)
	storeGroup.GET("/asset-definitions/:id", h.getAssetDefinition)
	storeGroup.GET("/nfts", h.listNfts)
	storeGroup.GET("/nfts/:id", h.getNft)
	storeGroup.GET("/roles", h.listRoles)
	storeGroup.GET("/peer/peers", h.listPeers)

	v1.GET("/peer/status", h.peerStatus)
	v1.GET("/telemetry", h.telemetrySnapshot)
	v1.GET("/telemetry/peers/:url/samples", h.telemetrySamples)

	return e
}

// requireReady rejects ingest-dependent reads with 503 until the ingest
// supervisor has completed its first bootstrap (spec.md §7).
func (h *handler) requireReady(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.ready.Ready() {
			return newUpstreamUnavailableError()
		}
		return next(c)
	}
}

func (h *handler) health(c echo.Context) error {
	return c.String(http.StatusOK, "healthy")
}

func (h *handler) ready_(c echo.Context) error {
	if !h.ready.Ready() {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

func requestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := context.WithValue(req.Context(), explorerlogger.EventIDField, uuid.New().String())
		c.SetRequest(req.WithContext(ctx))
		return next(c)
	}
}

func requestLogMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			if v.Error == nil {
				logger.InfoContext(ctx, "request", slog.String("uri", v.URI), slog.Int("status", v.Status))
			} else {
				logger.ErrorContext(ctx, "request_error", slog.String("uri", v.URI), slog.Int("status", v.Status), slog.String("err", v.Error.Error()))
			}
			return nil
		},
	})
}
