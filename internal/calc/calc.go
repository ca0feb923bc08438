// Package calc holds the calculator adapter contract and its strategies.
// Every strategy consumes the canonical request built by internal/quote and
// returns the canonical response; heterogeneous partner APIs are hidden
// behind the Configurable strategy's field mapping.
package calc

import (
	"context"
	"encoding/json"
	"fmt"

	"shipquote/internal/company"
	"shipquote/internal/quote"
)

// Adapter is the capability interface all calculator strategies implement.
// Data-driven failures come back as Response with Success=false; Calculate
// never returns a Go error for those.
type Adapter interface {
	Calculate(ctx context.Context, req quote.Request, co company.Company) quote.Response
}

// CacheKey derives the result-cache key for a (company, request) pair. The
// request fields are explicitly enumerated through the struct encoding, so
// the JSON is order-stable. The v1 segment namespaces the key so a mapping
// schema change can cold-start the cache instead of serving stale shapes.
func CacheKey(companyID int64, req quote.Request) string {
	b, _ := json.Marshal(req)
	return fmt.Sprintf("calculator:v1:company:%d:%s", companyID, b)
}
