// Package server exposes the raw datasets and computed insights over HTTP.
// It is thin plumbing: every request loads from the configured source and,
// for insights, runs a fresh analysis. Nothing is cached server-side.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Veraticus/cardlens/internal/insights"
	"github.com/Veraticus/cardlens/internal/loader"
)

// Server wires the dataset source and the analyzer into HTTP handlers.
type Server struct {
	source   loader.Source
	analyzer *insights.Analyzer
	now      func() time.Time
}

// New creates a server. The clock is injectable for tests.
func New(source loader.Source, analyzer *insights.Analyzer, now func() time.Time) *Server {
	if now == nil {
		now = time.Now
	}
	return &Server{source: source, analyzer: analyzer, now: now}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/financial-data", s.handleFinancialData).Methods(http.MethodGet)
	r.HandleFunc("/api/insights", s.handleInsights).Methods(http.MethodGet)
	r.PathPrefix("/api/").HandlerFunc(handleOptions).Methods(http.MethodOptions)
	return r
}

// handleFinancialData serves the raw datasets as loaded from the source.
func (s *Server) handleFinancialData(w http.ResponseWriter, r *http.Request) {
	data, err := s.source.Load(r.Context())
	if err != nil {
		slog.Error("failed to load financial data", "source", s.source.Name(), "error", err)
		writeError(w, "Failed to load financial data")
		return
	}

	writeJSON(w, map[string]any{
		"users":        map[string]any{"Users": data.Users},
		"creditCards":  map[string]any{"UserCreditCards": data.CreditCards},
		"transactions": map[string]any{"CreditCardTransactions": data.Transactions},
	})
}

// handleInsights loads the datasets, runs the analysis and serves only the
// derived insights, never the raw records.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	data, err := s.source.Load(r.Context())
	if err != nil {
		slog.Error("failed to load financial data", "source", s.source.Name(), "error", err)
		writeError(w, "Failed to generate insights")
		return
	}

	result, err := s.analyzer.Analyze(data, s.now())
	if err != nil {
		// An aborted analysis surfaces as a generic failure; internals
		// stay in the logs.
		slog.Error("analysis failed", "error", err)
		writeError(w, "Failed to generate insights")
		return
	}

	writeJSON(w, result)
}

func handleOptions(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	// Always fresh: the datasets can change between requests.
	w.Header().Set("Cache-Control", "private, no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
