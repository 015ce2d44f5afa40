package detect

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/redacter-man/pii-redacter/model"
)

// Engine scans a document's full text for PII in a single pass over a
// combined pattern. The engine is immutable after construction and safe
// for concurrent use.
type Engine struct {
	catalog  Catalog
	combined *regexp.Regexp
	groups   []int // capture group index per catalog rule
}

// NewEngine creates an engine over the default catalog.
func NewEngine() *Engine {
	e, err := NewEngineWithCatalog(DefaultCatalog())
	if err != nil {
		// The default catalog is static and always compiles.
		panic(err)
	}
	return e
}

// NewEngineWithCatalog compiles the given catalog into a combined scanner.
// Each rule becomes one named alternative; rule order is alternation order
// and therefore match priority at equal start positions.
func NewEngineWithCatalog(catalog Catalog) (*Engine, error) {
	if len(catalog.Rules) == 0 {
		return nil, fmt.Errorf("catalog has no rules")
	}

	alternatives := make([]string, 0, len(catalog.Rules))
	for _, rule := range catalog.Rules {
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return nil, fmt.Errorf("pattern for %s: %w", rule.Type, err)
		}
		expr := rule.Pattern
		if rule.CaseInsensitive {
			expr = "(?i:" + expr + ")"
		}
		alternatives = append(alternatives, fmt.Sprintf("(?P<%s>%s)", groupName(rule.Type), expr))
	}

	combined, err := regexp.Compile(strings.Join(alternatives, "|"))
	if err != nil {
		return nil, fmt.Errorf("compiling combined pattern: %w", err)
	}

	groups := make([]int, len(catalog.Rules))
	names := combined.SubexpNames()
	for i, rule := range catalog.Rules {
		groups[i] = -1
		for g, name := range names {
			if name == groupName(rule.Type) {
				groups[i] = g
				break
			}
		}
		if groups[i] < 0 {
			return nil, fmt.Errorf("no capture group for %s", rule.Type)
		}
	}

	return &Engine{catalog: catalog, combined: combined, groups: groups}, nil
}

// Detect returns all PII matches in fullText, already refined, sorted by
// ascending start index with shorter matches first on ties.
func (e *Engine) Detect(fullText string) []model.PIIMatch {
	var matches []model.PIIMatch
	for _, loc := range e.combined.FindAllStringSubmatchIndex(fullText, -1) {
		for i, rule := range e.catalog.Rules {
			g := e.groups[i]
			if loc[2*g] < 0 {
				continue
			}
			m := model.PIIMatch{
				Text:  fullText[loc[2*g]:loc[2*g+1]],
				Start: loc[2*g],
				End:   loc[2*g+1],
				Type:  rule.Type,
			}
			matches = append(matches, refine(m, rule, fullText))
			break
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		return matches[i].End < matches[j].End
	})
	return matches
}

// refine narrows a label-bearing match to its sensitive value. The start
// index only moves forward and is clamped to the match end, so refinement
// can never widen a span.
func refine(m model.PIIMatch, rule Rule, fullText string) model.PIIMatch {
	switch rule.Refine {
	case RefineToFirstDigit:
		i := m.Start
		for i < m.End && !isDigit(fullText[i]) {
			i++
		}
		m.Start = i
	case RefineSkipLabel:
		i := m.Start + rule.LabelLen
		if i > m.End {
			i = m.End
		}
		for i < m.End && isSpace(fullText[i]) {
			i++
		}
		m.Start = i
	default:
		return m
	}
	m.Text = fullText[m.Start:m.End]
	return m
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// groupName converts a PII type's display name into a valid capture group
// identifier, e.g. "Routing Number" -> "ROUTING_NUMBER".
func groupName(pt model.PIIType) string {
	return strings.ReplaceAll(strings.ToUpper(pt.String()), " ", "_")
}
