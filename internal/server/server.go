// Package server exposes the ROI engine over a JSON API and serves the
// embedded dashboard that renders the metrics and charts.
package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/oceanworks/fleet-roi/internal/config"
	"github.com/oceanworks/fleet-roi/internal/roi"
	"github.com/oceanworks/fleet-roi/pkg/catalog"
	"github.com/oceanworks/fleet-roi/pkg/constants"
	"github.com/oceanworks/fleet-roi/pkg/mathutil"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger      *zap.Logger
	engine      *roi.Engine
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the web UI and ROI API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
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

	h := &handler{
		logger:      logger,
		engine:      roi.NewEngine(logger),
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	mux := http.NewServeMux()

	// ROI evaluation endpoint
	mux.HandleFunc("/api/roi", h.handleROI)

	// Catalog endpoint for building the form controls
	mux.HandleFunc("/api/catalog", h.handleCatalog)

	// Config serialization endpoint for dashboard-state downloads
	mux.HandleFunc("/api/export", h.handleExport)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux
}

type roiRequest struct {
	Fleet         roi.FleetParameters  `json:"fleet"`
	Applications  []applicationPayload `json:"applications"`
	ThreeYearView bool                 `json:"threeYearView"`
}

type applicationPayload struct {
	Name          string  `json:"name"`
	Selected      bool    `json:"selected"`
	SavingPercent float64 `json:"savingPercent"`
}

type roiResponse struct {
	Metrics   roi.MetricsResult `json:"metrics"`
	Breakdown []savingsSlice    `json:"breakdown"`
	Warnings  []string          `json:"warnings,omitempty"`
	Duration  string            `json:"duration"`
}

// savingsSlice is one bar/donut segment: applications with zero savings are
// excluded before the response is built.
type savingsSlice struct {
	Application string  `json:"application"`
	Label       string  `json:"label"`
	Savings     float64 `json:"savings"`
}

type catalogEntry struct {
	Name            string  `json:"name"`
	Icon            string  `json:"icon"`
	MinSavingPct    float64 `json:"minSavingPct"`
	MaxSavingPct    float64 `json:"maxSavingPct"`
	DefaultSaving   float64 `json:"defaultSavingPct"`
	DefaultSelected bool    `json:"defaultSelected"`
}

func (h *handler) handleROI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	req, ok := h.decodeRequest(w, r, "server.handleROI")
	if !ok {
		return
	}

	selections := buildSelections(req.Applications)
	if err := roi.ValidateInputs(req.Fleet, selections); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleROI")
		return
	}

	metrics := h.engine.ComputeMetrics(req.Fleet, selections, req.ThreeYearView)
	elapsed := time.Since(start)

	response := roiResponse{
		Metrics:   metrics,
		Breakdown: buildBreakdown(metrics),
		Warnings:  requestWarnings(req),
		Duration:  elapsed.String(),
	}

	h.logger.Info("roi computed",
		zap.String("op", "server.handleROI"),
		zap.Int("fleetSize", req.Fleet.FleetSize),
		zap.Bool("threeYear", req.ThreeYearView),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	apps := catalog.Default()
	entries := make([]catalogEntry, 0, len(apps))
	for _, app := range apps {
		entries = append(entries, catalogEntry{
			Name:            app.Name,
			Icon:            app.Icon,
			MinSavingPct:    app.MinSavingPct,
			MaxSavingPct:    app.MaxSavingPct,
			DefaultSaving:   app.DefaultSavingPct,
			DefaultSelected: app.DefaultSelected(),
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"applications": entries})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	req, ok := h.decodeRequest(w, r, "server.handleExport")
	if !ok {
		return
	}

	cfg := config.Configuration{
		Fleet:         req.Fleet,
		ThreeYearView: req.ThreeYearView,
	}
	for _, app := range req.Applications {
		cfg.Applications = append(cfg.Applications, config.ApplicationConfig{
			Name:          app.Name,
			Selected:      app.Selected,
			SavingPercent: app.SavingPercent,
		})
	}

	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request, op string) (roiRequest, bool) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req roiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return roiRequest{}, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return roiRequest{}, false
	}

	return req, true
}

// buildSelections converts the request's application list into the engine's
// selection map. The list fully specifies the state: catalog applications not
// listed are unselected. Unknown names are carried through so validation
// rejects them.
func buildSelections(apps []applicationPayload) roi.Selections {
	selections := make(roi.Selections, len(catalog.Default()))
	for _, app := range catalog.Default() {
		selections[app.Name] = roi.Selection{}
	}
	for _, app := range apps {
		selections[app.Name] = roi.Selection{
			Selected:      app.Selected,
			SavingPercent: app.SavingPercent,
		}
	}
	return selections
}

func buildBreakdown(metrics roi.MetricsResult) []savingsSlice {
	slices := make([]savingsSlice, 0, len(metrics.PerApplicationSavings))
	for _, app := range catalog.Default() {
		amount := metrics.PerApplicationSavings[app.Name]
		if mathutil.IsZero(amount) {
			continue
		}
		slices = append(slices, savingsSlice{
			Application: app.Name,
			Label:       app.Label(),
			Savings:     amount,
		})
	}
	return slices
}

func requestWarnings(req roiRequest) []string {
	cfg := config.Configuration{Fleet: req.Fleet}
	for _, app := range req.Applications {
		cfg.Applications = append(cfg.Applications, config.ApplicationConfig{
			Name:          app.Name,
			Selected:      app.Selected,
			SavingPercent: app.SavingPercent,
		})
	}
	return cfg.ValidateConfiguration()
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("roi request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
