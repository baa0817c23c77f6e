// Package server serves the calculator web UI and its JSON API.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/emi-calculator/internal/config"
	"github.com/iwvelando/emi-calculator/internal/exchange"
	"github.com/iwvelando/emi-calculator/pkg/constants"
	"github.com/iwvelando/emi-calculator/pkg/format"
	"github.com/iwvelando/emi-calculator/pkg/loans"
	"github.com/iwvelando/emi-calculator/pkg/output"
	"github.com/iwvelando/emi-calculator/pkg/validation"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// RateSource provides the exchange rate table.
type RateSource interface {
	Rates(ctx context.Context) (exchange.RateTable, error)
}

// Options configures the handler.
type Options struct {
	MaxRequestSize int64
	MaxTermYears   float64
	Version        string
	Preferences    config.Preferences
	Rates          RateSource
	Limiter        *RateLimiter
}

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	maxTermYears   float64
	version        string
	preferences    config.Preferences
	rates          RateSource
}

// NewHandler constructs the HTTP handler that serves the web UI and calculator API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxRequestSize <= 0 {
		opts.MaxRequestSize = constants.DefaultMaxRequestSizeBytes
	}
	if opts.MaxTermYears <= 0 {
		opts.MaxTermYears = constants.DefaultMaxTermYears
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}
	prefs := opts.Preferences
	if prefs.Currency == "" {
		prefs.Currency = constants.DefaultCurrency
	}

	h := &handler{
		logger:         logger,
		maxRequestSize: opts.MaxRequestSize,
		maxTermYears:   opts.MaxTermYears,
		version:        version,
		preferences:    prefs,
		rates:          opts.Rates,
	}

	api := http.NewServeMux()
	api.HandleFunc("/api/calculate", h.handleCalculate)
	api.HandleFunc("/api/rates", h.handleRates)
	api.HandleFunc("/api/rates/convert", h.handleConvert)
	api.HandleFunc("/api/currencies", h.handleCurrencies)
	api.HandleFunc("/api/preferences", h.handlePreferences)
	api.HandleFunc("/api/version", h.handleVersion)

	var apiHandler http.Handler = api
	if opts.Limiter != nil {
		apiHandler = opts.Limiter.Middleware(api)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	return mux
}

type calculateResponse struct {
	RequestID         string          `json:"requestId"`
	Currency          string          `json:"currency"`
	MonthlyPayment    float64         `json:"monthlyPayment"`
	TotalInterestPaid float64         `json:"totalInterestPaid"`
	TotalPayment      float64         `json:"totalPayment"`
	Schedule          []loans.Entry   `json:"schedule"`
	Formatted         formattedTotals `json:"formatted"`
	CSV               string          `json:"csv"`
	Duration          string          `json:"duration"`
}

type formattedTotals struct {
	MonthlyPayment    string `json:"monthlyPayment"`
	TotalInterestPaid string `json:"totalInterestPaid"`
	TotalPayment      string `json:"totalPayment"`
}

func loanErrorKind(err error) string {
	if errors.Is(err, loans.ErrInvalidTerm) {
		return "invalid_term"
	}
	return "invalid_input"
}

type errorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	requestID := uuid.NewString()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), "", requestID, op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "", requestID, op)
		return
	}

	var in loans.Inputs
	fields := []struct {
		key  string
		dest *float64
	}{
		{"principal", &in.Principal},
		{"interestRate", &in.InterestRate},
		{"loanTerm", &in.LoanTerm},
	}
	for _, f := range fields {
		value, err := coerceFloat(payload[f.key])
		if err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", f.key, err), "invalid_input", requestID, op)
			return
		}
		*f.dest = value
	}

	currency := h.preferences.Currency
	switch raw := payload["currency"].(type) {
	case nil:
	case string:
		if strings.TrimSpace(raw) != "" {
			if err := validation.ValidateCurrency(raw); err != nil {
				h.respondError(w, http.StatusBadRequest, err.Error(), "invalid_currency", requestID, op)
				return
			}
			currency = strings.ToUpper(strings.TrimSpace(raw))
		}
	default:
		h.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("currency: expected a currency code, got %T", raw), "invalid_currency", requestID, op)
		return
	}

	if err := in.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), loanErrorKind(err), requestID, op)
		return
	}
	if in.LoanTerm > h.maxTermYears {
		h.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("loan term of %v years exceeds the limit of %v years", in.LoanTerm, h.maxTermYears),
			"invalid_term", requestID, op)
		return
	}

	schedule, err := loans.Calculate(in)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), loanErrorKind(err), requestID, op)
		return
	}

	elapsed := time.Since(start)
	response := calculateResponse{
		RequestID:         requestID,
		Currency:          currency,
		MonthlyPayment:    schedule.MonthlyPayment,
		TotalInterestPaid: schedule.TotalInterestPaid,
		TotalPayment:      schedule.TotalPayment,
		Schedule:          schedule.Entries,
		Formatted: formattedTotals{
			MonthlyPayment:    format.Currency(schedule.MonthlyPayment, currency),
			TotalInterestPaid: format.Currency(schedule.TotalInterestPaid, currency),
			TotalPayment:      format.Currency(schedule.TotalPayment, currency),
		},
		CSV:      output.CsvString(schedule),
		Duration: elapsed.String(),
	}

	h.logger.Info("schedule computed",
		zap.String("op", op),
		zap.String("requestId", requestID),
		zap.Float64("principal", in.Principal),
		zap.Float64("interestRate", in.InterestRate),
		zap.Float64("loanTerm", in.LoanTerm),
		zap.Int("months", len(schedule.Entries)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleRates(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRates"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	page, err := pageParam(query.Get("page"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("page: %v", err), "invalid_input", "", op)
		return
	}
	pageSize, err := pageParam(query.Get("pageSize"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("pageSize: %v", err), "invalid_input", "", op)
		return
	}

	table, ok := h.fetchRates(w, r, op)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, table.Page(page, pageSize))
}

// pageParam parses an optional positive integer query value; empty is 0.
func pageParam(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q is not a positive integer", raw)
	}
	return n, nil
}

func (h *handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConvert"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	amount, err := coerceFloat(query.Get("amount"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("amount: %v", err), "invalid_input", "", op)
		return
	}
	from := strings.ToUpper(strings.TrimSpace(query.Get("from")))
	to := strings.ToUpper(strings.TrimSpace(query.Get("to")))
	if from == "" || to == "" {
		h.respondError(w, http.StatusBadRequest, "from and to currencies are required", "invalid_input", "", op)
		return
	}

	table, ok := h.fetchRates(w, r, op)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"amount": amount,
		"from":   from,
		"to":     to,
		"result": table.Convert(amount, from, to),
		"base":   table.Base,
	})
}

func (h *handler) fetchRates(w http.ResponseWriter, r *http.Request, op string) (exchange.RateTable, bool) {
	if h.rates == nil {
		h.respondError(w, http.StatusServiceUnavailable, exchange.ErrMissingAPIKey.Error(), "rates_unavailable", "", op)
		return exchange.RateTable{}, false
	}

	table, err := h.rates.Rates(r.Context())
	switch {
	case err == nil:
		return table, true
	case errors.Is(err, exchange.ErrMissingAPIKey):
		h.respondError(w, http.StatusServiceUnavailable, err.Error(), "rates_unavailable", "", op)
	default:
		h.respondError(w, http.StatusBadGateway, "Failed to fetch exchange rates. Please try again later.", "rates_upstream", "", op)
		h.logger.Warn("exchange rate lookup failed",
			zap.String("op", op),
			zap.Error(err),
		)
	}
	return exchange.RateTable{}, false
}

func (h *handler) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, format.Currencies())
}

func (h *handler) handlePreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, h.preferences)
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

func (h *handler) respondError(w http.ResponseWriter, status int, msg, kind, requestID, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.String("requestId", requestID),
		zap.Int("status", status),
		zap.String("kind", kind),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg, Kind: kind, RequestID: requestID})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// coerceFloat turns a form value into a number the way the UI does: missing
// and blank values are zero, numeric strings are parsed.
func coerceFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case json.Number:
		return v.Float64()
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", v)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", value)
	}
}
