package match

import (
	"strings"
	"testing"

	"github.com/korjavin/fridgechef/pkg/models"
)

func item(id, name string) models.FridgeItem {
	return models.FridgeItem{ID: id, FridgeID: "f1", Name: name, Quantity: 1}
}

func newTestMatcher() *Matcher {
	return New(DefaultTable(), DefaultMinKeywordTokenLen)
}

func TestMatchExactTier(t *testing.T) {
	m := newTestMatcher()
	items := []models.FridgeItem{
		item("1", "양파"),
		item("2", "적양파"),
		item("3", " 양 파 "),
	}

	got := m.Match("양파", items)
	if len(got) != 2 {
		t.Fatalf("expected 2 exact matches, got %d", len(got))
	}
	// Exact hits suppress the substring tier entirely: "적양파" must not appear.
	for _, it := range got {
		if it.ID == "2" {
			t.Errorf("substring match leaked into exact tier result")
		}
	}
}

func TestMatchSubstringTier(t *testing.T) {
	m := newTestMatcher()
	items := []models.FridgeItem{
		item("1", "적양파"),
		item("2", "감자"),
	}

	got := m.Match("양파", items)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected substring match on 적양파, got %v", got)
	}

	// Containment works in both directions.
	got = m.Match("적양파", []models.FridgeItem{item("3", "양파")})
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("expected reverse containment match, got %v", got)
	}
}

func TestMatchKeywordTier(t *testing.T) {
	m := newTestMatcher()
	items := []models.FridgeItem{
		item("1", "chicken breast, skinless"),
		item("2", "감자"),
	}

	got := m.Match("grilled chicken", items)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected keyword match on chicken, got %v", got)
	}
}

func TestMatchKeywordTierDeduplicates(t *testing.T) {
	m := newTestMatcher()
	items := []models.FridgeItem{item("1", "chicken thigh chicken wing")}

	got := m.Match("roast chicken dinner", items)
	if len(got) != 1 {
		t.Fatalf("expected deduplicated single hit, got %d", len(got))
	}
}

func TestMatchKeywordMinTokenLen(t *testing.T) {
	// Raising the minimum token length to 3 runes keeps 2-rune tokens out of
	// the keyword tier.
	m := New(DefaultTable(), 3)
	items := []models.FridgeItem{item("1", "소금 약간")}

	if got := m.Match("소금 한꼬집", items); len(got) != 0 {
		t.Fatalf("expected no keyword hits with min token len 3, got %v", got)
	}

	loose := New(DefaultTable(), 1)
	if got := loose.Match("소금 한꼬집", items); len(got) != 1 {
		t.Fatalf("expected keyword hit with default min token len, got %v", got)
	}
}

func TestMatchTiersAreNotMerged(t *testing.T) {
	m := newTestMatcher()
	items := []models.FridgeItem{
		item("1", "양파"),    // exact
		item("2", "적양파"),   // substring
		item("3", "양파 반개"), // keyword-ish
	}

	got := m.Match("양파", items)
	for _, it := range got {
		n := Normalize(it.Name)
		q := Normalize("양파")
		if n != q && !strings.Contains(n, q) && !strings.Contains(q, n) {
			t.Errorf("result %q violates tier guarantee", it.Name)
		}
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected only the exact tier result, got %v", got)
	}
}

func TestMatchMalformedInput(t *testing.T) {
	m := newTestMatcher()
	items := []models.FridgeItem{item("1", "양파")}

	for _, in := range []string{"", "   ", "!!!", "\t\n"} {
		if got := m.Match(in, items); len(got) != 0 {
			t.Errorf("Match(%q) = %v, want empty", in, got)
		}
	}

	if got := m.Match("양파", nil); len(got) != 0 {
		t.Errorf("Match against empty fridge = %v, want empty", got)
	}
}

func TestFindAlternatives(t *testing.T) {
	m := newTestMatcher()
	items := []models.FridgeItem{
		item("1", "대파"),
		item("2", "감자"),
	}

	alts := m.FindAlternatives("양파", items)
	if len(alts) != 1 {
		t.Fatalf("expected 1 alternative, got %d", len(alts))
	}
	if alts[0].Item.ID != "1" {
		t.Errorf("expected 대파 as alternative, got %v", alts[0].Item)
	}
	if alts[0].Reason == "" {
		t.Errorf("alternative is missing its reason")
	}
}

func TestSubstitutionAsymmetryIsPreserved(t *testing.T) {
	// The curated table lists 대파 as a substitute for 양파, but deliberately
	// has no 대파 entry at all. A recipe needing 대파 therefore finds nothing
	// in a fridge holding only 양파. Do not "fix" this by symmetrizing the
	// table; the entries are authoritative as written.
	m := newTestMatcher()
	items := []models.FridgeItem{item("1", "양파")}

	if got := m.Match("대파", items); len(got) != 0 {
		t.Fatalf("expected no cascade match for 대파, got %v", got)
	}
	if alts := m.FindAlternatives("대파", items); len(alts) != 0 {
		t.Fatalf("expected no alternatives for 대파, got %v", alts)
	}

	// The forward direction works.
	if alts := m.FindAlternatives("양파", []models.FridgeItem{item("2", "대파")}); len(alts) != 1 {
		t.Fatalf("expected 양파→대파 substitution, got %v", alts)
	}

	// The mutual pair works both ways.
	if alts := m.FindAlternatives("당근", []models.FridgeItem{item("3", "미니 당근")}); len(alts) == 0 {
		t.Fatal("expected 당근→미니 당근 substitution")
	}
	if alts := m.FindAlternatives("미니 당근", []models.FridgeItem{item("4", "당근")}); len(alts) == 0 {
		t.Fatal("expected 미니 당근→당근 substitution")
	}
}

func TestLookupSelectionDefaults(t *testing.T) {
	m := newTestMatcher()

	// First exact match is selected by default.
	res := m.Lookup("양파", []models.FridgeItem{item("1", "양파"), item("2", "양파")})
	if res.Selected == nil || res.Selected.ID != "1" || res.IsAlternativeSelected {
		t.Fatalf("unexpected default selection: %+v", res)
	}
	if !res.Available() {
		t.Error("expected Available() with exact matches")
	}

	// With no exact match, the first alternative is selected.
	res = m.Lookup("양파", []models.FridgeItem{item("3", "대파")})
	if res.Selected == nil || res.Selected.ID != "3" || !res.IsAlternativeSelected {
		t.Fatalf("unexpected alternative selection: %+v", res)
	}
	if res.Available() {
		t.Error("alternatives alone must not count as available")
	}

	// Nothing at all.
	res = m.Lookup("트러플", []models.FridgeItem{item("4", "감자")})
	if res.Selected != nil {
		t.Fatalf("expected nil selection, got %+v", res.Selected)
	}
}

func TestResultSelect(t *testing.T) {
	m := newTestMatcher()
	res := m.Lookup("양파", []models.FridgeItem{item("1", "양파"), item("2", "양파")})

	if !res.Select("2") {
		t.Fatal("Select failed for a known candidate")
	}
	if res.Selected.ID != "2" || res.IsAlternativeSelected {
		t.Fatalf("unexpected selection after Select: %+v", res)
	}

	if res.Select("nope") {
		t.Fatal("Select succeeded for an unknown ID")
	}
	if res.Selected.ID != "2" {
		t.Fatal("failed Select must leave the selection untouched")
	}
}

func TestCustomTableInjection(t *testing.T) {
	custom := Table{
		"우유": {{Name: "연유", Reason: "희석하면 대체 가능"}},
	}
	m := New(custom, DefaultMinKeywordTokenLen)

	alts := m.FindAlternatives("우유", []models.FridgeItem{item("1", "연유")})
	if len(alts) != 1 || alts[0].Reason != "희석하면 대체 가능" {
		t.Fatalf("custom table not honored: %v", alts)
	}
	if alts := m.FindAlternatives("양파", []models.FridgeItem{item("2", "대파")}); len(alts) != 0 {
		t.Fatalf("default table leaked into custom matcher: %v", alts)
	}
}
