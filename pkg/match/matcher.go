package match

import (
	"strings"
	"unicode"

	"github.com/korjavin/fridgechef/pkg/models"
)

// DefaultMinKeywordTokenLen is the minimum rune length a token must exceed to
// participate in the keyword tier.
const DefaultMinKeywordTokenLen = 1

// Matcher resolves recipe ingredient names against a fridge snapshot using a
// three-tier cascade (exact, substring, keyword) plus a substitution table
// for alternatives. It never mutates the snapshot and applies no ordering of
// its own.
type Matcher struct {
	subs        Source
	minTokenLen int
}

// New creates a matcher backed by the given substitution source.
// minKeywordTokenLen below DefaultMinKeywordTokenLen falls back to the default.
func New(subs Source, minKeywordTokenLen int) *Matcher {
	if minKeywordTokenLen < DefaultMinKeywordTokenLen {
		minKeywordTokenLen = DefaultMinKeywordTokenLen
	}
	return &Matcher{
		subs:        subs,
		minTokenLen: minKeywordTokenLen,
	}
}

// Match returns the fridge items matching the ingredient name. Each tier is
// tried only when the previous one produced nothing; tiers are never merged.
// Empty or garbage input matches nothing.
func (m *Matcher) Match(name string, items []models.FridgeItem) []models.FridgeItem {
	query := Normalize(name)
	if query == "" {
		return nil
	}

	var exact []models.FridgeItem
	for _, item := range items {
		if Normalize(item.Name) == query {
			exact = append(exact, item)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	// Containment is checked both ways so "양파" still finds "적양파".
	var contained []models.FridgeItem
	for _, item := range items {
		itemName := Normalize(item.Name)
		if itemName == "" {
			continue
		}
		if strings.Contains(itemName, query) || strings.Contains(query, itemName) {
			contained = append(contained, item)
		}
	}
	if len(contained) > 0 {
		return contained
	}

	return m.keywordMatch(name, items)
}

// keywordMatch is the most permissive tier: the raw strings are split on
// whitespace and commas, and any cross pair of sufficiently long tokens where
// either contains the other is a hit. Results are deduplicated by item ID.
func (m *Matcher) keywordMatch(name string, items []models.FridgeItem) []models.FridgeItem {
	queryTokens := m.tokenize(name)
	if len(queryTokens) == 0 {
		return nil
	}

	var matched []models.FridgeItem
	seen := make(map[string]bool)
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		if tokensOverlap(queryTokens, m.tokenize(item.Name)) {
			seen[item.ID] = true
			matched = append(matched, item)
		}
	}
	return matched
}

// FindAlternatives looks up the substitution table by the raw ingredient name
// and runs the full cascade for every candidate, collecting hits with the
// substitution's reason. Hits are deduplicated by item ID across candidates.
func (m *Matcher) FindAlternatives(name string, items []models.FridgeItem) []models.Alternative {
	var alternatives []models.Alternative
	seen := make(map[string]bool)
	for _, sub := range m.subs.SubstitutesFor(name) {
		for _, item := range m.Match(sub.Name, items) {
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			alternatives = append(alternatives, models.Alternative{
				Item:   item,
				Reason: sub.Reason,
			})
		}
	}
	return alternatives
}

func (m *Matcher) tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	var tokens []string
	for _, f := range fields {
		if len([]rune(f)) > m.minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func tokensOverlap(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if strings.Contains(x, y) || strings.Contains(y, x) {
				return true
			}
		}
	}
	return false
}
