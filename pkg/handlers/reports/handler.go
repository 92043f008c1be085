package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/bi-tools/reportsmith/pkg/adapters"
	"github.com/bi-tools/reportsmith/pkg/models/api"
	"github.com/bi-tools/reportsmith/pkg/models/domain"
	"github.com/bi-tools/reportsmith/pkg/models/store"
	reportstore "github.com/bi-tools/reportsmith/pkg/store/duckdb/report"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultListLimit = 50

// Assembler archives an inbound payload and returns its history record.
type Assembler interface {
	Assemble(ctx context.Context, payload api.ReportPayload) (store.ReportRecord, error)
}

type Handler struct {
	assembler Assembler
	store     reportstore.Store
}

func NewHandler(assembler Assembler, store reportstore.Store) *Handler {
	return &Handler{
		assembler: assembler,
		store:     store,
	}
}

func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var payload api.ReportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "malformed payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.assembler.Assemble(ctx, payload)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Msg("failed to assemble report")
		http.Error(w, "failed to assemble report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(adapters.MapRecordToAPIReport(record)); err != nil {
		logger.Error().
			Err(err).
			Str("id", record.ID).
			Msg("failed to encode report record")
	}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := h.store.List(ctx, limit)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list report records")
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapRecordsToAPIReports(records)); err != nil {
		logger.Error().Err(err).Msg("failed to encode report records")
	}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	record, err := h.store.Get(ctx, id)
	if errors.Is(err, reportstore.ErrNotFound) {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("id", id).Msg("failed to load report record")
		http.Error(w, "failed to load report", http.StatusInternalServerError)
		return
	}

	content, err := os.ReadFile(record.Path)
	if err != nil {
		logger.Error().Err(err).Str("path", record.Path).Msg("failed to read report document")
		http.Error(w, "failed to read report document", http.StatusInternalServerError)
		return
	}

	response := api.ReportDocument{
		Report:  adapters.MapRecordToAPIReport(record),
		Content: string(content),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().
			Err(err).
			Str("id", id).
			Msg("failed to encode report document")
	}
}
