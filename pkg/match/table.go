package match

// Substitute is one culinary substitution candidate for an ingredient
type Substitute struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Source provides substitution candidates for a raw (non-normalized)
// ingredient name. An unknown name yields an empty list.
type Source interface {
	SubstitutesFor(name string) []Substitute
}

// Table is an immutable substitution table keyed by the raw ingredient name.
// The table is asymmetric: an entry for A listing B does not imply an entry
// for B listing A. Entries are authoritative as written; symmetry is never
// inferred.
type Table map[string][]Substitute

// SubstitutesFor returns the substitutes for the given raw name. Callers must
// not modify the returned slice.
func (t Table) SubstitutesFor(name string) []Substitute {
	return t[name]
}

// defaultTable is the curated substitution table. Note the asymmetry: "양파"
// lists "대파" but there is no "대파" entry at all, while "당근" and
// "미니 당근" list each other.
var defaultTable = Table{
	"양파": {
		{Name: "대파", Reason: "비슷한 향과 단맛을 내는 파 종류"},
		{Name: "쪽파", Reason: "향은 가볍지만 같은 용도로 사용 가능"},
	},
	"당근": {
		{Name: "미니 당근", Reason: "크기만 다른 같은 채소"},
	},
	"미니 당근": {
		{Name: "당근", Reason: "크기만 다른 같은 채소"},
	},
	"버터": {
		{Name: "마가린", Reason: "식물성 유지로 대체 가능"},
	},
	"우유": {
		{Name: "두유", Reason: "농도가 비슷한 식물성 대체 음료"},
	},
	"설탕": {
		{Name: "꿀", Reason: "단맛 대체, 수분 함량에 주의"},
		{Name: "올리고당", Reason: "단맛과 점성이 비슷한 감미료"},
	},
	"식용유": {
		{Name: "올리브유", Reason: "가열 요리에 대체 가능한 기름"},
	},
	"생크림": {
		{Name: "우유", Reason: "농도는 묽지만 풍미가 비슷함"},
	},
}

// DefaultTable returns the built-in substitution table
func DefaultTable() Table {
	return defaultTable
}
