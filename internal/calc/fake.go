package calc

import (
	"context"
	"hash/fnv"

	"shipquote/internal/company"
	"shipquote/internal/quote"
)

// Fake is a deterministic stand-in used for adapter-framework testing. It
// satisfies the full Adapter contract so tests can swap it in through the
// factory without special-casing callers.
type Fake struct{}

func NewFake() *Fake { return &Fake{} }

var _ Adapter = (*Fake)(nil)

func (f *Fake) Calculate(ctx context.Context, req quote.Request, co company.Company) quote.Response {
	h := fnv.New32a()
	h.Write([]byte(req.Auction))
	h.Write([]byte{0})
	h.Write([]byte(req.USACity))
	h.Write([]byte{0})
	h.Write([]byte(req.VehicleCategory))
	// A stable price in the 800..2847 range keyed off the request.
	price := 800 + float64(h.Sum32()%2048)
	return quote.Response{
		Success:       true,
		TotalPrice:    price,
		DistanceMiles: float64(200 + h.Sum32()%1800),
		Currency:      "USD",
	}
}
