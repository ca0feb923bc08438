// Package company models the slice of the company record the calculator
// core reads: the calculator strategy discriminator and its configuration.
// The rest of the company model is owned elsewhere.
package company

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Calculator strategy discriminators. Unknown or missing values are treated
// as CalcDefault by the adapter factory.
const (
	CalcDefault   = "default"
	CalcCustomAPI = "custom_api"
	CalcFormula   = "formula"
	CalcFake      = "fake"
)

// Company is the read-only view of a company record consumed by the
// calculator core.
type Company struct {
	ID               int64
	Name             string
	CalculatorType   string
	CalculatorAPIURL string
	CalculatorConfig *Config
}

// ResponseMapping holds dot-notation paths into the partner's JSON response
// for each canonical response field.
type ResponseMapping struct {
	TotalPrice    string `json:"totalPrice"`
	DistanceMiles string `json:"distanceMiles"`
	Currency      string `json:"currency"`
}

// Config is the per-company calculator configuration, owned and edited by
// company administration. Request maps canonical field names to partner
// field names; a nil value means "omit this field from the payload".
// Static is an arbitrary bag merged into every outbound payload.
type Config struct {
	Request  map[string]*string `json:"request"`
	Static   map[string]any     `json:"static"`
	Response ResponseMapping    `json:"response"`
	Headers  map[string]string  `json:"headers"`
	TimeoutS int                `json:"timeout"`
}

// DefaultTimeout applies when a company config carries no timeout.
const DefaultTimeout = 30 * time.Second

var ErrIncompleteMapping = errors.New("incomplete field mapping")

// canonicalRequestFields is the closed set of fields a request mapping may
// rename or suppress.
var canonicalRequestFields = map[string]struct{}{
	"buyprice":        {},
	"auction":         {},
	"vehicletype":     {},
	"usacity":         {},
	"destinationport": {},
	"vehiclecategory": {},
	"coparturl":       {},
}

// ParseConfig validates a raw calculator_config JSON document at the
// storage boundary so later access can trust its shape.
func ParseConfig(raw []byte) (*Config, error) {
	if len(raw) == 0 {
		return nil, ErrIncompleteMapping
	}
	var outer struct {
		FieldMapping *Config `json:"field_mapping"`
		Headers      map[string]string
		Timeout      int
	}
	if err := json.Unmarshal(raw, &outer); err != nil {
		return nil, fmt.Errorf("calculator_config: %w", err)
	}
	cfg := outer.FieldMapping
	if cfg == nil {
		return nil, ErrIncompleteMapping
	}
	if outer.Headers != nil {
		cfg.Headers = outer.Headers
	}
	if cfg.TimeoutS == 0 {
		cfg.TimeoutS = outer.Timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the mapping is usable: the request side only names
// canonical fields and the response side knows where the total price lives.
func (c *Config) Validate() error {
	if c == nil || c.Request == nil {
		return ErrIncompleteMapping
	}
	for field := range c.Request {
		if _, ok := canonicalRequestFields[field]; !ok {
			return fmt.Errorf("field_mapping.request: unknown canonical field %q", field)
		}
	}
	if c.Response.TotalPrice == "" {
		return fmt.Errorf("%w: response.totalPrice path missing", ErrIncompleteMapping)
	}
	return nil
}

// Timeout returns the configured partner call timeout, defaulting to 30s.
func (c *Config) Timeout() time.Duration {
	if c == nil || c.TimeoutS <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutS) * time.Second
}
