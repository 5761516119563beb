package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/leasematch/internal/address"
)

// AddressHandler exposes standardization and comparison of single addresses
type AddressHandler struct {
	Standardizer *address.Standardizer
	Comparator   *address.Comparator
}

// StandardizeRequest is the body of POST /api/standardize
type StandardizeRequest struct {
	Address string `json:"address"`
}

// StandardizeResponse carries the canonical form of an address
type StandardizeResponse struct {
	Input        string `json:"input"`
	Standardized string `json:"standardized"`
}

// CompareRequest is the body of POST /api/compare
type CompareRequest struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
}

// CompareResponse reports the comparator's decision
type CompareResponse struct {
	Match     bool    `json:"match"`
	Score     float64 `json:"score"`
	Field     string  `json:"field,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	Threshold float64 `json:"threshold"`
}

// Standardize returns the canonical form of the posted address
func (h *AddressHandler) Standardize(w http.ResponseWriter, r *http.Request) {
	var req StandardizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Address == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	standardized, err := h.Standardizer.Standardize(req.Address)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusOK, StandardizeResponse{Input: req.Address, Standardized: standardized})
}

// Compare decides whether the two posted addresses denote the same property
func (h *AddressHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	decision, err := h.Comparator.Evaluate(req.Address1, req.Address2)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusOK, CompareResponse{
		Match:     decision.Match,
		Score:     decision.Score,
		Field:     decision.Field,
		Reason:    decision.Reason,
		Threshold: h.Comparator.Threshold(),
	})
}
