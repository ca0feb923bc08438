// Package quote defines the canonical calculator request/response contract
// and the builder that is the single chokepoint between raw user input and
// any calculator strategy. Partner calculators are strict and
// case-sensitive, so all normalization happens here, once, centrally.
package quote

// Request is the canonical shape consumed by every calculator adapter.
// Every field is either a validated canonical value or an explicit default;
// only Builder.Build constructs one.
type Request struct {
	BuyPrice        float64 `json:"buyprice"`
	Auction         string  `json:"auction"`
	VehicleType     string  `json:"vehicletype"`
	USACity         string  `json:"usacity"`
	DestinationPort string  `json:"destinationport"`
	VehicleCategory string  `json:"vehiclecategory"`
	CopartURL       string  `json:"coparturl,omitempty"`
}

// Response is the canonical shape every adapter returns. Success=false
// implies TotalPrice=0 and Error populated.
type Response struct {
	Success       bool               `json:"success"`
	TotalPrice    float64            `json:"totalPrice"`
	DistanceMiles float64            `json:"distanceMiles"`
	Currency      string             `json:"currency"`
	Breakdown     map[string]float64 `json:"breakdown,omitempty"`
	Error         string             `json:"error,omitempty"`
}

// Failure builds the canonical failure response.
func Failure(msg string) Response {
	return Response{Success: false, TotalPrice: 0, Error: msg}
}

// Defaults for fields the caller did not override. BuyPrice is 1 because
// the buy price is irrelevant to shipping-only quotes.
const (
	DefaultBuyPrice        = 1.0
	DefaultVehicleType     = "standard"
	DefaultDestinationPort = "POTI"
	DefaultVehicleCategory = "Sedan"
)

var vehicleTypes = map[string]struct{}{
	"standard": {},
	"heavy":    {},
}

var vehicleCategories = map[string]struct{}{
	"Sedan":     {},
	"Bike":      {},
	"Small SUV": {},
	"Big SUV":   {},
	"Pickup":    {},
	"Van":       {},
	"Big Van":   {},
}

// IsValidVehicleType reports whether t is one of the two supported types.
func IsValidVehicleType(t string) bool {
	_, ok := vehicleTypes[t]
	return ok
}

// IsValidVehicleCategory reports whether c is in the closed category set.
func IsValidVehicleCategory(c string) bool {
	_, ok := vehicleCategories[c]
	return ok
}
