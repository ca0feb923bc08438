package calc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"golang.org/x/time/rate"

	"shipquote/internal/cache"
	"shipquote/internal/company"
	"shipquote/internal/quote"
)

// Configurable calls a company's external calculator API, translating the
// canonical request through the company's field mapping and the partner's
// response back through dot-notation paths. Results are memoized in the
// result cache for 24 hours; the cache is read-through and optional.
type Configurable struct {
	client  *http.Client
	store   cache.Store
	limiter *rate.Limiter // nil disables outbound rate limiting
}

func NewConfigurable(client *http.Client, store cache.Store, limiter *rate.Limiter) *Configurable {
	if client == nil {
		client = http.DefaultClient
	}
	if store == nil {
		store = cache.Noop{}
	}
	return &Configurable{client: client, store: store, limiter: limiter}
}

var _ Adapter = (*Configurable)(nil)

func (a *Configurable) Calculate(ctx context.Context, req quote.Request, co company.Company) quote.Response {
	// Preflight: a misconfigured company never reaches the network.
	if co.CalculatorAPIURL == "" {
		log.Printf("[calc][configurable] company=%d (%s) has no calculator_api_url", co.ID, co.Name)
		return quote.Failure(fmt.Sprintf("calculator for %s is not configured: missing API URL", co.Name))
	}
	cfg := co.CalculatorConfig
	if err := cfg.Validate(); err != nil {
		log.Printf("[calc][configurable] company=%d (%s) invalid field mapping: %v", co.ID, co.Name, err)
		return quote.Failure(fmt.Sprintf("calculator for %s is not configured: %v", co.Name, err))
	}

	key := CacheKey(co.ID, req)
	if raw, ok, err := a.store.Get(ctx, key); err == nil && ok {
		var cached quote.Response
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached
		}
	} else if err != nil {
		log.Printf("[calc][configurable] cache read failed for company=%d: %v", co.ID, err)
	}

	resp, completed := a.call(ctx, req, co, cfg)
	if completed {
		if raw, err := json.Marshal(resp); err == nil {
			if err := a.store.Set(ctx, key, string(raw), cache.TTLQuoteResult); err != nil {
				log.Printf("[calc][configurable] cache write failed for company=%d: %v", co.ID, err)
			}
		}
	}
	return resp
}

// call performs the partner HTTP exchange. completed=false marks transport
// failures, which are structured for the caller but never cached.
func (a *Configurable) call(ctx context.Context, req quote.Request, co company.Company, cfg *company.Config) (quote.Response, bool) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return quote.Failure(fmt.Sprintf("calculator request to %s canceled: %v", co.Name, err)), false
		}
	}

	body, err := json.Marshal(BuildPayload(req, cfg))
	if err != nil {
		log.Printf("[calc][configurable] company=%d payload marshal failed: %v", co.ID, err)
		return quote.Failure(fmt.Sprintf("calculator request to %s failed unexpectedly", co.Name)), false
	}

	callCtx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, co.CalculatorAPIURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("[calc][configurable] company=%d bad request: %v", co.ID, err)
		return quote.Failure(fmt.Sprintf("calculator request to %s failed unexpectedly", co.Name)), false
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range cfg.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := a.client.Do(httpReq)
	if err != nil {
		// Timeouts land here too; treated as a network failure, not
		// propagated as an unhandled error.
		log.Printf("[calc][configurable] company=%d network error: %v", co.ID, err)
		return quote.Failure(fmt.Sprintf("calculator for %s is unreachable", co.Name)), false
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		log.Printf("[calc][configurable] company=%d response read error: %v", co.ID, err)
		return quote.Failure(fmt.Sprintf("calculator for %s is unreachable", co.Name)), false
	}

	if httpResp.StatusCode >= 400 {
		msg := partnerErrorMessage(raw)
		log.Printf("[calc][configurable] company=%d HTTP %d: %s", co.ID, httpResp.StatusCode, msg)
		return quote.Failure(fmt.Sprintf("calculator for %s returned an error: %s", co.Name, msg)), true
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		log.Printf("[calc][configurable] company=%d invalid response JSON: %v", co.ID, err)
		return quote.Failure(fmt.Sprintf("calculator for %s returned an unreadable response", co.Name)), true
	}

	total := CoerceFloat(ExtractPath(parsed, cfg.Response.TotalPrice))
	if total <= 0 {
		// The call succeeded but the mapped price is degenerate; soft
		// failure so the partner is not mistaken for "said no price".
		log.Printf("[calc][configurable] company=%d non-positive total price (path %q)", co.ID, cfg.Response.TotalPrice)
		return quote.Failure(fmt.Sprintf("calculator for %s returned no usable price", co.Name)), true
	}

	out := quote.Response{Success: true, TotalPrice: total, Currency: "USD"}
	if cfg.Response.DistanceMiles != "" {
		out.DistanceMiles = CoerceFloat(ExtractPath(parsed, cfg.Response.DistanceMiles))
	}
	if cfg.Response.Currency != "" {
		if c, ok := ExtractPath(parsed, cfg.Response.Currency).(string); ok && c != "" {
			out.Currency = c
		}
	}
	return out, true
}

// partnerErrorMessage extracts a best-effort human-readable message from a
// partner error body, trying the common field names.
func partnerErrorMessage(raw []byte) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, k := range []string{"message", "error"} {
			if s, ok := body[k].(string); ok && s != "" {
				return s
			}
		}
	}
	if len(raw) > 0 && len(raw) <= 200 {
		return string(raw)
	}
	return "unexpected partner response"
}
