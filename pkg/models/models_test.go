package models

import "testing"

func TestSortByExpiry(t *testing.T) {
	items := []FridgeItem{
		{ID: "1", Name: "우유", ExpiryDate: "2026-09-10"},
		{ID: "2", Name: "두부"},
		{ID: "3", Name: "계란", ExpiryDate: "2026-09-01"},
		{ID: "4", Name: "치즈", ExpiryDate: "2026-09-05"},
	}

	SortByExpiry(items)

	want := []string{"3", "4", "1", "2"}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("position %d = %s, want %s (order %v)", i, items[i].ID, id, items)
		}
	}
}

func TestDisplayUnit(t *testing.T) {
	if got := (FridgeItem{Unit: "g"}).DisplayUnit(); got != "g" {
		t.Errorf("DisplayUnit = %s, want g", got)
	}
	if got := (FridgeItem{}).DisplayUnit(); got != "개" {
		t.Errorf("DisplayUnit fallback = %s, want 개", got)
	}
}
