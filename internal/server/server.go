package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/boiler-optimizer/internal/metrics"
	"github.com/iwvelando/boiler-optimizer/pkg/api"
	"github.com/iwvelando/boiler-optimizer/pkg/constants"
	"github.com/iwvelando/boiler-optimizer/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// MessageNoData is returned when the request body is empty or an empty object.
const MessageNoData = "No JSON data provided"

type handler struct {
	logger      *zap.Logger
	optimizer   Optimizer
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the web UI and optimization API.
func NewHandler(logger *zap.Logger, optimizer Optimizer, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, optimizer: optimizer, maxBodySize: maxBodySize, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(accessLog(logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/optimize", h.handleOptimize)
		r.Get("/version", h.handleVersion)
	})

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	r.Handle("/*", http.FileServer(http.FS(sub)))

	return r
}

func (h *handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOptimize"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return
	}

	req, err := decodeRequest(body)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.logger.Debug("optimization request received",
		zap.String("op", op),
		zap.String("request_id", chimiddleware.GetReqID(r.Context())),
		zap.Float64(validation.FieldFeedwaterTemp, req.FeedwaterTemp),
		zap.Float64(validation.FieldSteamPressure, req.SteamPressure),
		zap.Float64(validation.FieldFuelFlow, req.FuelFlow),
		zap.Float64(validation.FieldEfficiency, req.Efficiency),
	)

	resp, err := h.optimizer.Optimize(r.Context(), req)
	if err != nil {
		var inputErr *validation.InputError
		if errors.As(err, &inputErr) {
			h.respondErrorWithOp(w, http.StatusBadRequest, inputErr.Error(), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("optimization failed: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// decodeRequest validates body against the request schema and fills omitted
// fields with their defaults.
func decodeRequest(body []byte) (api.OptimizationRequest, error) {
	var req api.OptimizationRequest

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return req, errors.New(MessageNoData)
	}

	var payload interface{}
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return req, fmt.Errorf("failed to decode request: %v", err)
	}
	if payload == nil {
		return req, errors.New(MessageNoData)
	}
	if obj, ok := payload.(map[string]interface{}); ok && len(obj) == 0 {
		return req, errors.New(MessageNoData)
	}

	if err := validateRequestSchema(payload); err != nil {
		return req, err
	}

	var fields struct {
		FeedwaterTemp *float64 `json:"feedwater_temp"`
		SteamPressure *float64 `json:"steam_pressure"`
		FuelFlow      *float64 `json:"fuel_flow"`
		Efficiency    *float64 `json:"efficiency"`
	}
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return req, fmt.Errorf("failed to decode request: %v", err)
	}

	req.FeedwaterTemp = valueOr(fields.FeedwaterTemp, constants.DefaultFeedwaterTemp)
	req.SteamPressure = valueOr(fields.SteamPressure, constants.DefaultSteamPressure)
	req.FuelFlow = valueOr(fields.FuelFlow, constants.DefaultFuelFlow)
	req.Efficiency = valueOr(fields.Efficiency, constants.DefaultEfficiency)
	return req, nil
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("optimization request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, api.ErrorResponse(msg))
}

// MessageEncodeFailed is returned when a response cannot be encoded.
const MessageEncodeFailed = "failed to encode response"

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.Int("status", status),
			zap.Error(err),
		)
		buf.Reset()
		// An error response always encodes.
		_ = json.NewEncoder(&buf).Encode(api.ErrorResponse(MessageEncodeFailed))
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func accessLog(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			metrics.HTTPRequests.WithLabelValues(route, fmt.Sprintf("%d", status)).Inc()

			logger.Info("request served",
				zap.String("op", "server.accessLog"),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
