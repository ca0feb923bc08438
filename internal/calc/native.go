package calc

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"shipquote/internal/company"
	"shipquote/internal/match"
	"shipquote/internal/quote"
)

// Native computes quotes from the in-process tariff tables. It is the
// strategy for companies without a custom integration and never touches
// the network.
type Native struct{}

func NewNative() *Native { return &Native{} }

var _ Adapter = (*Native)(nil)

// Inland towing: flat pickup fee per auction plus a per-mile rate to the
// export hub.
var auctionPickupFee = map[string]decimal.Decimal{
	"Copart":  decimal.NewFromInt(250),
	"IAAI":    decimal.NewFromInt(250),
	"Manheim": decimal.NewFromInt(300),
	"Adesa":   decimal.NewFromInt(300),
}

var perMileRate = decimal.RequireFromString("0.62")

// stateHubMiles approximates road distance from a state to the export hub.
// Unlisted states fall back to defaultHubMiles.
var stateHubMiles = map[string]float64{
	"FL": 350, "GA": 120, "SC": 210, "NC": 330, "VA": 520, "TN": 380,
	"AL": 310, "MS": 440, "LA": 620, "TX": 1050, "OK": 980, "AR": 650,
	"KY": 540, "OH": 720, "IN": 760, "IL": 860, "MI": 900, "MO": 820,
	"PA": 780, "NY": 880, "NJ": 820, "MD": 680, "WI": 980, "MN": 1180,
	"IA": 980, "KS": 1080, "NE": 1180, "CO": 1480, "AZ": 1850, "NM": 1600,
	"NV": 2250, "UT": 1950, "CA": 2400, "OR": 2600, "WA": 2650, "ID": 2250,
	"MT": 2100, "WY": 1700, "ND": 1500, "SD": 1350,
}

const defaultHubMiles = 1100

var categoryMultiplier = map[string]decimal.Decimal{
	"Sedan":     decimal.RequireFromString("1.0"),
	"Bike":      decimal.RequireFromString("0.6"),
	"Small SUV": decimal.RequireFromString("1.1"),
	"Big SUV":   decimal.RequireFromString("1.25"),
	"Pickup":    decimal.RequireFromString("1.25"),
	"Van":       decimal.RequireFromString("1.3"),
	"Big Van":   decimal.RequireFromString("1.5"),
}

var heavyMultiplier = decimal.RequireFromString("1.2")

// Ocean freight per destination port, sedan-equivalent container share.
var oceanFreight = map[string]decimal.Decimal{
	"POTI":      decimal.NewFromInt(1150),
	"BATUMI":    decimal.NewFromInt(1150),
	"KLAIPEDA":  decimal.NewFromInt(1350),
	"ROTTERDAM": decimal.NewFromInt(1250),
}

var defaultOceanFreight = decimal.NewFromInt(1250)
var serviceFee = decimal.NewFromInt(150)

func (n *Native) Calculate(ctx context.Context, req quote.Request, co company.Company) quote.Response {
	miles := hubMiles(req.USACity)

	pickup, ok := auctionPickupFee[req.Auction]
	if !ok {
		pickup = decimal.NewFromInt(300)
	}
	inland := pickup.Add(perMileRate.Mul(decimal.NewFromFloat(miles)))

	mult, ok := categoryMultiplier[req.VehicleCategory]
	if !ok {
		mult = decimal.RequireFromString("1.0")
	}
	inland = inland.Mul(mult)
	if strings.EqualFold(req.VehicleType, "heavy") {
		inland = inland.Mul(heavyMultiplier)
	}

	ocean, ok := oceanFreight[req.DestinationPort]
	if !ok {
		ocean = defaultOceanFreight
	}
	ocean = ocean.Mul(mult)

	inland = inland.Round(2)
	ocean = ocean.Round(2)
	total := inland.Add(ocean).Add(serviceFee).Round(2)

	return quote.Response{
		Success:       true,
		TotalPrice:    total.InexactFloat64(),
		DistanceMiles: miles,
		Currency:      "USD",
		Breakdown: map[string]float64{
			"inland":  inland.InexactFloat64(),
			"ocean":   ocean.InexactFloat64(),
			"service": serviceFee.InexactFloat64(),
		},
	}
}

func hubMiles(canonicalCity string) float64 {
	loc := match.ParseLocation(canonicalCity)
	if m, ok := stateHubMiles[loc.State]; ok {
		return m
	}
	return defaultHubMiles
}
