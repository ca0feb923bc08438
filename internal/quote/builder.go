package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shipquote/internal/match"
	"shipquote/internal/refdata"
)

// ErrMissingAuction indicates a caller bug: the auction field is required
// on every build input.
var ErrMissingAuction = errors.New("auction is required")

// auctionAliases maps common spellings to canonical auction names. An alias
// is honored only when its target is itself present in the canonical list.
var auctionAliases = map[string]string{
	"copart":                  "Copart",
	"iaai":                    "IAAI",
	"insurance auto auctions": "IAAI",
	"manheim":                 "Manheim",
	"adesa":                   "Adesa",
}

// Input is the raw caller-supplied shipping request.
type Input struct {
	Auction string
	USACity string
}

// Options override the defaulted request fields. Invalid overrides are
// gated by the validity helpers and fall back to the defaults.
type Options struct {
	BuyPrice        float64
	VehicleType     string
	VehicleCategory string
	DestinationPort string
	CopartURL       string
}

// BuildResult is the discriminated outcome of Build. OK=false means an
// expected data condition (unmatched city), not a caller error.
type BuildResult struct {
	OK            bool
	Request       Request
	Error         string
	UnmatchedCity string
}

// Builder normalizes raw input into canonical calculator requests. One
// instance is constructed at process start and shared; the reference
// catalog it holds is populate-once/read-many.
type Builder struct {
	catalog *refdata.Catalog
}

func NewBuilder(catalog *refdata.Catalog) *Builder {
	return &Builder{catalog: catalog}
}

// NormalizeAuction resolves a raw auction name to its canonical form.
// Exact case-insensitive matches against the canonical list win; otherwise
// the alias table is consulted. Anything else is a validation error naming
// the supported auctions.
func (b *Builder) NormalizeAuction(ctx context.Context, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrMissingAuction
	}
	canonical := b.catalog.Auctions(ctx)
	for _, name := range canonical {
		if strings.EqualFold(name, trimmed) {
			return name, nil
		}
	}
	if target, ok := auctionAliases[strings.ToLower(trimmed)]; ok {
		for _, name := range canonical {
			if name == target {
				return name, nil
			}
		}
	}
	return "", fmt.Errorf("unsupported auction %q: supported auctions are %s",
		trimmed, strings.Join(canonical, ", "))
}

// MatchCity fuzzy-matches a raw city string against the canonical list.
// When both the input and a candidate carry a state code, candidates in a
// different state are skipped outright rather than scored down. The best
// candidate is returned only if it clears the acceptance threshold; callers
// must treat ok=false as "price unavailable", never default to a city.
func (b *Builder) MatchCity(ctx context.Context, rawCity string) (string, bool) {
	if strings.TrimSpace(rawCity) == "" {
		return "", false
	}
	parsed := match.ParseLocation(rawCity)

	var (
		best      string
		bestScore float64
	)
	for _, candidate := range b.catalog.Cities(ctx) {
		cand := match.ParseLocation(candidate)
		if parsed.State != "" && cand.State != "" && parsed.State != cand.State {
			continue
		}
		score := match.CityMatchScore(rawCity, candidate)
		if parsed.State != "" && parsed.State == cand.State {
			score += match.StateBonus
		}
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if bestScore < match.MatchThreshold {
		return "", false
	}
	return best, true
}

// Build orchestrates auction normalization then city matching, in that
// order (a request with an unsupported auction is rejected before any
// fuzzy-matching work). The returned error is reserved for invalid auction
// input; an unmatched city is an expected condition reported through
// BuildResult with the original string preserved for telemetry.
func (b *Builder) Build(ctx context.Context, in Input, opts *Options) (BuildResult, error) {
	auction, err := b.NormalizeAuction(ctx, in.Auction)
	if err != nil {
		return BuildResult{}, err
	}

	city, ok := b.MatchCity(ctx, in.USACity)
	if !ok {
		return BuildResult{
			OK:            false,
			Error:         fmt.Sprintf("no canonical city matched %q", in.USACity),
			UnmatchedCity: in.USACity,
		}, nil
	}

	req := Request{
		BuyPrice:        DefaultBuyPrice,
		Auction:         auction,
		VehicleType:     DefaultVehicleType,
		USACity:         city,
		DestinationPort: DefaultDestinationPort,
		VehicleCategory: DefaultVehicleCategory,
	}
	if opts != nil {
		if opts.BuyPrice > 0 {
			req.BuyPrice = opts.BuyPrice
		}
		if IsValidVehicleType(opts.VehicleType) {
			req.VehicleType = opts.VehicleType
		}
		if IsValidVehicleCategory(opts.VehicleCategory) {
			req.VehicleCategory = opts.VehicleCategory
		}
		if strings.TrimSpace(opts.DestinationPort) != "" {
			req.DestinationPort = strings.ToUpper(strings.TrimSpace(opts.DestinationPort))
		}
		req.CopartURL = strings.TrimSpace(opts.CopartURL)
	}
	return BuildResult{OK: true, Request: req}, nil
}
