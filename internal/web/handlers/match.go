package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/leasematch/internal/audit"
	"github.com/leasematch/internal/matcher"
	"github.com/leasematch/internal/report"
	"github.com/leasematch/internal/source"
)

// maxDealBytes bounds the size of a posted deal
const maxDealBytes = 32 << 20

// RunStore keeps the history of stored-deal runs
type RunStore interface {
	RecordRun(ctx context.Context, dealID string, r *report.Report, elapsed time.Duration) error
	History(ctx context.Context, dealID string, limit int) ([]audit.RunSummary, error)
	Report(ctx context.Context, runID string) (json.RawMessage, error)
}

// MatchHandler runs reconciliations for posted or stored deals
type MatchHandler struct {
	Matcher *matcher.Matcher
	// Source and Runs are nil when no document database is configured.
	Source source.Source
	Runs   RunStore
}

// MatchDeal reconciles the deal in the request body
func (h *MatchHandler) MatchDeal(w http.ResponseWriter, r *http.Request) {
	deal, err := source.Decode(http.MaxBytesReader(w, r.Body, maxDealBytes))
	if err != nil {
		http.Error(w, "Invalid deal: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.Matcher.Match(deal))
}

// MatchStored loads a deal from the document source, reconciles it and
// records the run when a run store is configured
func (h *MatchHandler) MatchStored(w http.ResponseWriter, r *http.Request) {
	if h.Source == nil {
		http.Error(w, "No document source configured", http.StatusNotImplemented)
		return
	}

	dealID := mux.Vars(r)["id"]
	deal, err := h.Source.Load(r.Context(), dealID)
	if err != nil {
		if errors.Is(err, source.ErrDealNotFound) {
			http.Error(w, "Deal not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to load deal %s: %v", dealID, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	start := time.Now()
	result := h.Matcher.Match(deal)
	if h.Runs != nil {
		if err := h.Runs.RecordRun(r.Context(), dealID, result, time.Since(start)); err != nil {
			log.Printf("Warning: failed to record run %s: %v", result.RunID, err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// ListRuns returns the recorded runs of a deal, newest first
func (h *MatchHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.Runs == nil {
		http.Error(w, "No run history configured", http.StatusNotImplemented)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := h.Runs.History(r.Context(), mux.Vars(r)["id"], limit)
	if err != nil {
		log.Printf("Failed to list runs: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, runs)
}

// GetRun returns the stored report of one run
func (h *MatchHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	if h.Runs == nil {
		http.Error(w, "No run history configured", http.StatusNotImplemented)
		return
	}

	body, err := h.Runs.Report(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, audit.ErrRunNotFound) {
			http.Error(w, "Run not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to load run: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, body)
}
