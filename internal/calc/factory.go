package calc

import (
	"log"
	"net/http"

	"golang.org/x/time/rate"

	"shipquote/internal/cache"
	"shipquote/internal/company"
)

// Factory maps a company's calculator_type to the right adapter. Adapters
// are stateless aside from injected dependencies, so each type is
// instantiated once per factory and shared across calls.
type Factory struct {
	native       *Native
	configurable *Configurable
	fake         *Fake
}

// NewFactory wires the shared adapter instances. store may be nil (no
// result cache configured); rps <= 0 disables outbound rate limiting.
func NewFactory(client *http.Client, store cache.Store, rps float64) *Factory {
	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	}
	return &Factory{
		native:       NewNative(),
		configurable: NewConfigurable(client, store, limiter),
		fake:         NewFake(),
	}
}

// GetAdapter selects the adapter for a company. Unknown or missing types
// get the native strategy. The formula strategy is designated but not yet
// implemented; companies configured with it fall back to native with a
// warning instead of hard-failing.
func (f *Factory) GetAdapter(co company.Company) Adapter {
	switch co.CalculatorType {
	case company.CalcCustomAPI:
		return f.configurable
	case company.CalcFake:
		return f.fake
	case company.CalcFormula:
		log.Printf("[calc][factory] company=%d formula calculator not implemented, using default", co.ID)
		return f.native
	case company.CalcDefault, "":
		return f.native
	default:
		log.Printf("[calc][factory] company=%d unknown calculator_type %q, using default", co.ID, co.CalculatorType)
		return f.native
	}
}
