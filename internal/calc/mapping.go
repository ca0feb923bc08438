package calc

import (
	"strconv"
	"strings"

	"shipquote/internal/company"
	"shipquote/internal/quote"
)

// ExtractPath walks a dot-separated path into nested JSON objects and
// returns nil on any missing key or non-object intermediate. No shape
// beyond "object or not" is assumed.
func ExtractPath(v any, path string) any {
	if path == "" {
		return nil
	}
	cur := v
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[part]
		if !ok {
			return nil
		}
	}
	return cur
}

// CoerceFloat defensively converts an extracted JSON value to a number:
// numeric passthrough, string parse, anything else 0.
func CoerceFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// BuildPayload maps the canonical request onto the partner's field names.
// A mapping entry with a nil value suppresses the field entirely; a field
// absent from the mapping keeps its canonical name. Static fields are
// merged in last and win on collision.
func BuildPayload(req quote.Request, cfg *company.Config) map[string]any {
	canonical := map[string]any{
		"buyprice":        req.BuyPrice,
		"auction":         req.Auction,
		"vehicletype":     req.VehicleType,
		"usacity":         req.USACity,
		"destinationport": req.DestinationPort,
		"vehiclecategory": req.VehicleCategory,
	}
	if req.CopartURL != "" {
		canonical["coparturl"] = req.CopartURL
	}

	payload := make(map[string]any, len(canonical)+len(cfg.Static))
	for field, value := range canonical {
		mapped, present := cfg.Request[field]
		switch {
		case !present:
			payload[field] = value
		case mapped == nil:
			// explicitly suppressed
		default:
			payload[*mapped] = value
		}
	}
	for k, v := range cfg.Static {
		payload[k] = v
	}
	return payload
}
