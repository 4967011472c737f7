package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/deal-viability/internal/config"
	"github.com/iwvelando/deal-viability/internal/deal"
	"github.com/iwvelando/deal-viability/internal/optimizer"
	"github.com/iwvelando/deal-viability/internal/rental"
	"github.com/iwvelando/deal-viability/internal/store"
	"github.com/iwvelando/deal-viability/internal/viability"
	"github.com/iwvelando/deal-viability/pkg/constants"
	"github.com/iwvelando/deal-viability/pkg/optimization"
	"github.com/iwvelando/deal-viability/pkg/output"
	"go.uber.org/zap"
)

type handler struct {
	logger           *zap.Logger
	engine           *viability.Engine
	optimizer        *optimizer.Runner
	repo             store.Repository
	maxUploadSize    int64
	batchConcurrency int
	version          string
	now              func() time.Time
}

// Options tunes the handler. Zero values select the defaults.
type Options struct {
	MaxUploadSize    int64
	BatchConcurrency int
	Version          string
}

// NewHandler constructs the HTTP handler that serves the viability API. A nil
// repository keeps evaluated deals in memory.
func NewHandler(logger *zap.Logger, repo store.Repository, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if repo == nil {
		repo = store.NewMemoryStore()
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	batchConcurrency := opts.BatchConcurrency
	if batchConcurrency <= 0 {
		batchConcurrency = constants.DefaultBatchConcurrency
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:           logger,
		engine:           viability.NewEngine(logger),
		optimizer:        optimizer.NewRunner(logger),
		repo:             repo,
		maxUploadSize:    maxUploadSize,
		batchConcurrency: batchConcurrency,
		version:          trimmedVersion,
		now:              time.Now,
	}

	mux := http.NewServeMux()

	// Single and batch evaluation
	mux.HandleFunc("/api/viability", h.handleViability)
	mux.HandleFunc("/api/viability/batch", h.handleBatch)

	// Rental metrics
	mux.HandleFunc("/api/rental", h.handleRental)

	// Persisted evaluations
	mux.HandleFunc("/api/deals", h.handleDeals)
	mux.HandleFunc("/api/deals/{id}", h.handleDeal)

	// Full configuration upload (multipart file or raw YAML body)
	mux.HandleFunc("/api/config", h.handleConfig)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type batchRequest struct {
	Deals []config.DealConfig `json:"deals"`
}

type batchResponse struct {
	Results  []viability.Result `json:"results"`
	Duration string             `json:"duration"`
}

type configResponse struct {
	Deals         []viability.Result     `json:"deals"`
	Rentals       []output.RentalView    `json:"rentals"`
	Optimizations []optimization.Summary `json:"optimizations,omitempty"`
	Warnings      []string               `json:"warnings,omitempty"`
	CSV           string                 `json:"csv"`
	Duration      string                 `json:"duration"`
}

func (h *handler) handleViability(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleViability"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload config.DealConfig
	if !h.decodeJSON(w, r, &payload, op) {
		return
	}

	input, err := payload.ToProjectInput()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, h.engine.Evaluate(input))
}

func (h *handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBatch"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var payload batchRequest
	if !h.decodeJSON(w, r, &payload, op) {
		return
	}

	inputs, err := toProjectInputs(payload.Deals)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	results, err := h.engine.EvaluateAll(r.Context(), inputs, h.batchConcurrency)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, fmt.Sprintf("batch evaluation interrupted: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("batch evaluated",
		zap.String("op", op),
		zap.Int("deals", len(results)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, batchResponse{Results: results, Duration: elapsed.String()})
}

func (h *handler) handleRental(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRental"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload config.RentalConfig
	if !h.decodeJSON(w, r, &payload, op) {
		return
	}

	input, err := payload.ToRentalInput()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	metrics, err := rental.Analyze(input)
	if errors.Is(err, rental.ErrZeroInitialInvestment) {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, err.Error(), op)
		return
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, output.NewRentalView(payload.Name, metrics))
}

func (h *handler) handleDeals(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDeals"
	switch r.Method {
	case http.MethodGet:
		snapshots, err := h.repo.List(r.Context())
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to list deals: %v", err), op)
			return
		}
		h.writeJSON(w, http.StatusOK, snapshots)

	case http.MethodPost:
		var payload config.DealConfig
		if !h.decodeJSON(w, r, &payload, op) {
			return
		}
		input, err := payload.ToProjectInput()
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}

		snapshot := store.NewSnapshot(h.engine.Evaluate(input), h.now())
		if err := h.repo.Save(r.Context(), snapshot); err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to save deal: %v", err), op)
			return
		}

		h.logger.Info("deal saved",
			zap.String("op", op),
			zap.String("id", snapshot.ID),
			zap.String("status", string(snapshot.Status)),
		)
		w.Header().Set("Location", "/api/deals/"+snapshot.ID)
		h.writeJSON(w, http.StatusCreated, snapshot)

	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleDeal(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDeal"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	snapshot, err := h.repo.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to load deal: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, snapshot)
}

func (h *handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfig"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	configBytes, ok := h.readConfigUpload(w, r, op)
	if !ok {
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	inputs, err := toProjectInputs(cfg.Deals)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	results, err := h.engine.EvaluateAll(r.Context(), inputs, h.batchConcurrency)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, fmt.Sprintf("evaluation interrupted: %v", err), op)
		return
	}

	rentals := make([]output.RentalView, 0, len(cfg.Rentals))
	reports := make([]output.RentalReport, 0, len(cfg.Rentals))
	for i, rc := range cfg.Rentals {
		input, err := rc.ToRentalInput()
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		metrics, err := rental.Analyze(input)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Rental '%s' skipped: %v", rc.DisplayName(i), err))
			continue
		}
		rentals = append(rentals, output.NewRentalView(rc.DisplayName(i), metrics))
		reports = append(reports, output.RentalReport{Name: rc.DisplayName(i), Metrics: metrics})
	}

	optimizations, err := h.optimizer.RunDeals(cfg.Deals, inputs)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	var csvBuf bytes.Buffer
	report := output.Report{Deals: results, Rentals: reports, Optimizations: optimizations}
	if err := output.CsvFormat(&csvBuf, report); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("configuration evaluated",
		zap.String("op", op),
		zap.Int("deals", len(results)),
		zap.Int("rentals", len(rentals)),
		zap.Int("optimizations", len(optimizations)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, configResponse{
		Deals:         results,
		Rentals:       rentals,
		Optimizations: optimizations,
		Warnings:      warnings,
		CSV:           csvBuf.String(),
		Duration:      elapsed.String(),
	})
}

func (h *handler) readConfigUpload(w http.ResponseWriter, r *http.Request, op string) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			h.respondUploadError(w, err, op)
			return nil, false
		}
		return data, true
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.respondUploadError(w, err, op)
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return nil, false
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return nil, false
	}
	return buf.Bytes(), true
}

func (h *handler) respondUploadError(w http.ResponseWriter, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
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

// toProjectInputs converts every deal, reporting the first invalid one with
// its position.
func toProjectInputs(deals []config.DealConfig) ([]deal.ProjectInput, error) {
	inputs := make([]deal.ProjectInput, 0, len(deals))
	for i, d := range deals {
		input, err := d.ToProjectInput()
		if err != nil {
			return nil, fmt.Errorf("deal %d (%s): %w", i, d.DisplayName(i), err)
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("viability request failed",
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
