package detect

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/redacter-man/pii-redacter/model"
)

// Refinement selects how a rule's raw match is narrowed after the scan.
type Refinement int

const (
	// RefineNone keeps the raw match as-is.
	RefineNone Refinement = iota
	// RefineToFirstDigit advances the start index to the first digit in
	// the match.
	RefineToFirstDigit
	// RefineSkipLabel advances the start index past a fixed-length label
	// and any following whitespace.
	RefineSkipLabel
)

// Rule is one entry in the pattern catalog: a PII type, its pattern, and
// how the raw match is refined.
type Rule struct {
	Type            model.PIIType
	Pattern         string
	CaseInsensitive bool
	Refine          Refinement
	LabelLen        int // bytes to skip for RefineSkipLabel
}

// Catalog is the ordered pattern table. Order is load-bearing: within the
// combined scan, the earliest-declared rule wins when several could match
// at the same position. Fixed-length numeric rules rely on explicit \b
// boundary assertions so a longer digit run is never claimed by a shorter
// type.
type Catalog struct {
	Rules []Rule
}

// DefaultCatalog returns the built-in pattern table, in priority order:
//
//  1. SSN
//  2. Routing Number (exactly 9 digits)
//  3. Account Number (10-17 digits)
//  4. Credit Score (label-bearing, refined to the 3-digit value)
//  5. Credit Score Rating (label-bearing, refined to the rating word)
//  6. Credit Card Number
//  7. Phone Number
//  8. Email
//
// Label-bearing rules match case-insensitively; numeric shapes do not
// depend on case.
func DefaultCatalog() Catalog {
	return Catalog{Rules: []Rule{
		{
			Type:    model.PIISSN,
			Pattern: `\d{3}-\d{2}-\d{4}`,
		},
		{
			Type:    model.PIIRoutingNumber,
			Pattern: `\b\d{9}\b`,
		},
		{
			Type:    model.PIIAccountNumber,
			Pattern: `\b\d{10,17}\b`,
		},
		{
			Type:            model.PIICreditScore,
			Pattern:         `credit score:\s*\d{3}`,
			CaseInsensitive: true,
			Refine:          RefineToFirstDigit,
		},
		{
			Type:            model.PIICreditScoreRating,
			Pattern:         `credit report:\s*(?:very good|good|excellent|fair|poor|bad)`,
			CaseInsensitive: true,
			Refine:          RefineSkipLabel,
			LabelLen:        len("credit report:"),
		},
		{
			Type:    model.PIICreditCardNumber,
			Pattern: `\b(?:\d{4}[ -]?){3}\d{4}\b`,
		},
		{
			Type:    model.PIIPhoneNumber,
			Pattern: `\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`,
		},
		{
			Type:    model.PIIEmail,
			Pattern: `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`,
		},
	}}
}

// Config adjusts the catalog without reopening the closed PII type set:
// types can be disabled by display name, and an existing type's pattern
// can be overridden.
type Config struct {
	Disabled  []string          `yaml:"disabled"`
	Overrides map[string]string `yaml:"overrides"`
}

// LoadConfig reads a catalog configuration from a YAML file. A missing
// file yields an empty config and no error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing catalog config: %w", err)
	}
	return &cfg, nil
}

// Apply returns a new catalog with the config's disables and pattern
// overrides applied. Rule order, and with it match priority, is preserved.
func (c Catalog) Apply(cfg *Config) (Catalog, error) {
	if cfg == nil {
		return c, nil
	}

	disabled := make(map[model.PIIType]bool)
	for _, name := range cfg.Disabled {
		pt := model.ParsePIIType(name)
		if pt == model.PIINone {
			return Catalog{}, fmt.Errorf("unknown PII type %q in disabled list", name)
		}
		disabled[pt] = true
	}

	overrides := make(map[model.PIIType]string)
	for name, pattern := range cfg.Overrides {
		pt := model.ParsePIIType(name)
		if pt == model.PIINone {
			return Catalog{}, fmt.Errorf("unknown PII type %q in overrides", name)
		}
		overrides[pt] = pattern
	}

	var out Catalog
	for _, rule := range c.Rules {
		if disabled[rule.Type] {
			continue
		}
		if pattern, ok := overrides[rule.Type]; ok {
			rule.Pattern = pattern
		}
		out.Rules = append(out.Rules, rule)
	}
	return out, nil
}
