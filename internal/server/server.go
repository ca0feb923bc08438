package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"shipquote/internal/calc"
	"shipquote/internal/company"
	"shipquote/internal/quote"
	"shipquote/internal/refdata"
)

// CompanyStore is the narrow read API the quote flow needs from the
// company model.
type CompanyStore interface {
	GetByID(ctx context.Context, id int64) (company.Company, error)
}

type Server struct {
	builder   *quote.Builder
	factory   *calc.Factory
	companies CompanyStore
	catalog   *refdata.Catalog
}

func New(builder *quote.Builder, factory *calc.Factory, companies CompanyStore, catalog *refdata.Catalog) http.Handler {
	s := &Server{builder: builder, factory: factory, companies: companies, catalog: catalog}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(middleware.Logger)
	r.Get("/healthz", s.handleHealth)
	r.Get("/auctions", s.handleListAuctions)
	r.Post("/quotes", s.handleQuote)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleListAuctions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"auctions": s.catalog.Auctions(r.Context()),
	})
}

type QuoteRequest struct {
	CompanyID       int64   `json:"company_id"`
	Auction         string  `json:"auction"`
	USACity         string  `json:"usacity"`
	BuyPrice        float64 `json:"buyprice"`
	VehicleType     string  `json:"vehicletype"`
	VehicleCategory string  `json:"vehiclecategory"`
	DestinationPort string  `json:"destinationport"`
	CopartURL       string  `json:"coparturl"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	ctx := r.Context()

	// A quote without a company runs against the native tariff.
	var co company.Company
	if req.CompanyID != 0 {
		loaded, err := s.companies.GetByID(ctx, req.CompanyID)
		if err != nil {
			if errors.Is(err, company.ErrNotFound) {
				writeErrorJSON(w, http.StatusNotFound, "resource_not_found", "company not found")
				return
			}
			writeErrorJSON(w, http.StatusInternalServerError, "db_error", "db error")
			return
		}
		co = loaded
	}

	res, err := s.builder.Build(ctx, quote.Input{Auction: req.Auction, USACity: req.USACity}, &quote.Options{
		BuyPrice:        req.BuyPrice,
		VehicleType:     req.VehicleType,
		VehicleCategory: req.VehicleCategory,
		DestinationPort: req.DestinationPort,
		CopartURL:       req.CopartURL,
	})
	if err != nil {
		code := "invalid_auction"
		if errors.Is(err, quote.ErrMissingAuction) {
			code = "invalid_request"
		}
		writeErrorJSON(w, http.StatusBadRequest, code, err.Error())
		return
	}
	if !res.OK {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":           "unmatched_city",
				"message":        res.Error,
				"unmatched_city": res.UnmatchedCity,
			},
		})
		return
	}

	adapter := s.factory.GetAdapter(co)
	writeJSON(w, http.StatusOK, adapter.Calculate(ctx, res.Request, co))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErrorJSON writes a standardized JSON error response:
// {"error": {"code": string, "message": string}}
func writeErrorJSON(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// requestIDMiddleware ensures X-Request-ID is set on the response.
// If provided in the request header, it is propagated; otherwise a UUID is
// generated.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if rid == "" {
			rid = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r)
	})
}
