package refdata

import (
	"context"
	"errors"
	"testing"
)

type fakeStore struct {
	auctions []string
	cities   []string
	err      error
	calls    int
}

func (f *fakeStore) ListAuctions(ctx context.Context) ([]string, error) {
	f.calls++
	return f.auctions, f.err
}

func (f *fakeStore) ListCities(ctx context.Context) ([]string, error) {
	f.calls++
	return f.cities, f.err
}

func TestCatalog_AuctionsLoadedOnce(t *testing.T) {
	st := &fakeStore{auctions: []string{"Copart", "IAAI"}}
	c := NewCatalog(st, st)
	ctx := context.Background()
	if got := c.Auctions(ctx); len(got) != 2 || got[0] != "Copart" {
		t.Fatalf("unexpected auctions: %v", got)
	}
	c.Auctions(ctx)
	c.Auctions(ctx)
	if st.calls != 1 {
		t.Fatalf("expected single store read, got %d", st.calls)
	}
}

func TestCatalog_AuctionFallbackOnError(t *testing.T) {
	st := &fakeStore{err: errors.New("connection refused")}
	c := NewCatalog(st, st)
	got := c.Auctions(context.Background())
	if len(got) != 4 || got[0] != "Copart" || got[3] != "Adesa" {
		t.Fatalf("expected fallback auction list, got %v", got)
	}
}

func TestCatalog_CitiesEmptyOnError(t *testing.T) {
	st := &fakeStore{err: errors.New("connection refused")}
	c := NewCatalog(st, st)
	if got := c.Cities(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty city list on load failure, got %v", got)
	}
}

func TestCatalog_Cities(t *testing.T) {
	st := &fakeStore{cities: []string{"NC-ASHEVILLE", "TX-PERMIAN BASIN"}}
	c := NewCatalog(st, st)
	ctx := context.Background()
	if got := c.Cities(ctx); len(got) != 2 {
		t.Fatalf("unexpected cities: %v", got)
	}
	c.Cities(ctx)
	if st.calls != 1 {
		t.Fatalf("expected single store read, got %d", st.calls)
	}
}
