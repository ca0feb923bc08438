package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shipquote/internal/calc"
	"shipquote/internal/company"
	"shipquote/internal/quote"
	"shipquote/internal/refdata"
)

type fakeRef struct {
	auctions []string
	cities   []string
}

func (f *fakeRef) ListAuctions(ctx context.Context) ([]string, error) { return f.auctions, nil }
func (f *fakeRef) ListCities(ctx context.Context) ([]string, error)   { return f.cities, nil }

type fakeCompanies map[int64]company.Company

func (f fakeCompanies) GetByID(ctx context.Context, id int64) (company.Company, error) {
	co, ok := f[id]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	return co, nil
}

// helper to parse standardized error
type stdError struct {
	Error struct {
		Code          string `json:"code"`
		Message       string `json:"message"`
		UnmatchedCity string `json:"unmatched_city"`
	} `json:"error"`
}

func newTestHandler(companies fakeCompanies) http.Handler {
	ref := &fakeRef{
		auctions: []string{"Copart", "IAAI", "Manheim", "Adesa"},
		cities:   []string{"NC-ASHEVILLE", "TX-PERMIAN BASIN", "IL-CHICAGO"},
	}
	catalog := refdata.NewCatalog(ref, ref)
	return New(quote.NewBuilder(catalog), calc.NewFactory(nil, nil, 0), companies, catalog)
}

func postQuote(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(fakeCompanies{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body := rr.Body.String(); body != "ok" {
		t.Fatalf("expected body 'ok', got %q", body)
	}
}

func TestRequestIDHeaderPresent(t *testing.T) {
	h := newTestHandler(fakeCompanies{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rid := rr.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
}

func TestListAuctions(t *testing.T) {
	h := newTestHandler(fakeCompanies{})
	req := httptest.NewRequest(http.MethodGet, "/auctions", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var res struct {
		Auctions []string `json:"auctions"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(res.Auctions) != 4 || res.Auctions[0] != "Copart" {
		t.Fatalf("unexpected auctions: %v", res.Auctions)
	}
}

func TestQuote_NativeHappyPath(t *testing.T) {
	h := newTestHandler(fakeCompanies{})
	rr := postQuote(t, h, `{"auction":"copart","usacity":"Asheville (NC)"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rr.Code, rr.Body.String())
	}
	var res quote.Response
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !res.Success || res.TotalPrice <= 0 || res.Currency != "USD" {
		t.Fatalf("unexpected quote: %+v", res)
	}
}

func TestQuote_FakeCompanyAdapter(t *testing.T) {
	h := newTestHandler(fakeCompanies{5: {ID: 5, Name: "Test Carrier", CalculatorType: company.CalcFake}})
	rr := postQuote(t, h, `{"company_id":5,"auction":"IAAI","usacity":"Chicago"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rr.Code, rr.Body.String())
	}
	var res quote.Response
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !res.Success || res.TotalPrice < 800 {
		t.Fatalf("unexpected fake quote: %+v", res)
	}
}

func TestQuote_UnmatchedCity422(t *testing.T) {
	h := newTestHandler(fakeCompanies{})
	rr := postQuote(t, h, `{"auction":"Copart","usacity":"Nowhereville Lot 9"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d; body=%s", rr.Code, rr.Body.String())
	}
	var e stdError
	if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if e.Error.Code != "unmatched_city" || e.Error.UnmatchedCity != "Nowhereville Lot 9" {
		t.Fatalf("unexpected error payload: %+v", e)
	}
}

func TestQuote_InvalidAuction400(t *testing.T) {
	h := newTestHandler(fakeCompanies{})
	rr := postQuote(t, h, `{"auction":"dealer-direct","usacity":"Chicago"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d; body=%s", rr.Code, rr.Body.String())
	}
	var e stdError
	if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if e.Error.Code != "invalid_auction" {
		t.Fatalf("unexpected error code: %s", e.Error.Code)
	}
}

func TestQuote_MissingAuction400(t *testing.T) {
	h := newTestHandler(fakeCompanies{})
	rr := postQuote(t, h, `{"usacity":"Chicago"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var e stdError
	if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if e.Error.Code != "invalid_request" {
		t.Fatalf("unexpected error code: %s", e.Error.Code)
	}
}

func TestQuote_CompanyNotFound404(t *testing.T) {
	h := newTestHandler(fakeCompanies{})
	rr := postQuote(t, h, `{"company_id":99,"auction":"Copart","usacity":"Chicago"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d; body=%s", rr.Code, rr.Body.String())
	}
	var e stdError
	if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if e.Error.Code != "resource_not_found" {
		t.Fatalf("unexpected error code: %s", e.Error.Code)
	}
}

func TestQuote_InvalidJSON400(t *testing.T) {
	h := newTestHandler(fakeCompanies{})
	rr := postQuote(t, h, `{"auction":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
