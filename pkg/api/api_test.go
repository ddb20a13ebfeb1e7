package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/korjavin/fridgechef/pkg/avail"
	"github.com/korjavin/fridgechef/pkg/consume"
	"github.com/korjavin/fridgechef/pkg/fridge"
	"github.com/korjavin/fridgechef/pkg/history"
	"github.com/korjavin/fridgechef/pkg/match"
	"github.com/korjavin/fridgechef/pkg/models"
	"github.com/korjavin/fridgechef/pkg/recipe"
	"github.com/korjavin/fridgechef/pkg/storage"
	"github.com/korjavin/fridgechef/pkg/suggest"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	fridges := fridge.New(store)
	recipes := recipe.New(store)
	hist := history.New(store)
	matcher := match.New(match.DefaultTable(), match.DefaultMinKeywordTokenLen)
	aggregator := avail.New(matcher)
	applier := consume.NewApplier(fridges, hist)
	suggester := suggest.New(nil, aggregator)

	a := New(fridges, recipes, hist, matcher, aggregator, applier, suggester)
	srv := httptest.NewServer(a.Router())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}, out interface{}) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response of %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func addItem(t *testing.T, srv *httptest.Server, fridgeID, name string, quantity float64, unit string) models.FridgeItem {
	t.Helper()

	var item models.FridgeItem
	code := doJSON(t, http.MethodPost, srv.URL+"/api/v1/fridges/"+fridgeID+"/items",
		M{"name": name, "quantity": quantity, "unit": unit}, &item)
	if code != http.StatusCreated {
		t.Fatalf("add item %s: status %d", name, code)
	}
	return item
}

func TestItemCRUDAndMatch(t *testing.T) {
	srv := newTestServer(t)

	onion := addItem(t, srv, "home", "양파", 3, "개")
	addItem(t, srv, "home", "계란", 10, "개")

	var items []models.FridgeItem
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/fridges/home/items", nil, &items); code != http.StatusOK {
		t.Fatalf("list items: status %d", code)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}

	// Spaced query resolves to the same item through normalization.
	var result match.Result
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/fridges/home/match?ingredient=%20양%20파%20", nil, &result); code != http.StatusOK {
		t.Fatalf("match: status %d", code)
	}
	if len(result.ExactMatches) != 1 || result.ExactMatches[0].ID != onion.ID {
		t.Fatalf("match exact = %+v, want the 양파 item", result.ExactMatches)
	}
	if result.Selected == nil || result.Selected.ID != onion.ID || result.IsAlternativeSelected {
		t.Fatalf("selection = %+v, want exact 양파", result.Selected)
	}

	var updated models.FridgeItem
	code := doJSON(t, http.MethodPut, srv.URL+"/api/v1/fridges/home/items/"+onion.ID,
		M{"name": "양파", "quantity": 5, "unit": "개"}, &updated)
	if code != http.StatusOK || updated.Quantity != 5 {
		t.Fatalf("update: status %d, quantity %v", code, updated.Quantity)
	}

	if code := doJSON(t, http.MethodDelete, srv.URL+"/api/v1/fridges/home/items/"+onion.ID, nil, nil); code != http.StatusOK {
		t.Fatalf("delete: status %d", code)
	}
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/fridges/home/items", nil, &items); code != http.StatusOK {
		t.Fatalf("list after delete: status %d", code)
	}
	if len(items) != 1 || items[0].Name != "계란" {
		t.Fatalf("items after delete = %+v", items)
	}
}

func TestAvailabilityWithAlternative(t *testing.T) {
	srv := newTestServer(t)

	addItem(t, srv, "home", "대파", 1, "단")
	addItem(t, srv, "home", "계란", 6, "개")

	var created models.Recipe
	code := doJSON(t, http.MethodPost, srv.URL+"/api/v1/recipes", M{
		"title": "양파 계란국",
		"ingredients": []M{
			{"name": "양파", "quantity": 1},
			{"name": "계란", "quantity": 2},
			{"name": "두부", "quantity": 0.5},
		},
	}, &created)
	if code != http.StatusCreated {
		t.Fatalf("create recipe: status %d", code)
	}

	var av models.RecipeAvailability
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/fridges/home/availability/"+created.ID, nil, &av); code != http.StatusOK {
		t.Fatalf("availability: status %d", code)
	}
	if av.TotalCount != 3 || av.AvailableCount != 2 || av.CanMake {
		t.Fatalf("availability = %+v", av)
	}
	if len(av.MissingIngredients) != 1 || av.MissingIngredients[0] != "두부" {
		t.Fatalf("missing = %v, want [두부]", av.MissingIngredients)
	}
	for _, ing := range av.AvailableIngredients {
		switch ing.Name {
		case "양파":
			if !ing.IsAlternative || ing.FridgeItemName != "대파" {
				t.Errorf("양파 should resolve via 대파 alternative, got %+v", ing)
			}
		case "계란":
			if ing.IsAlternative {
				t.Errorf("계란 is stocked, should not be an alternative: %+v", ing)
			}
		}
	}

	// Batch with an empty id list covers all recipes from one snapshot.
	var batch map[string]models.RecipeAvailability
	if code := doJSON(t, http.MethodPost, srv.URL+"/api/v1/fridges/home/availability", M{"recipe_ids": []string{}}, &batch); code != http.StatusOK {
		t.Fatalf("availability batch: status %d", code)
	}
	if got, ok := batch[created.ID]; !ok || got.AvailableCount != av.AvailableCount {
		t.Fatalf("batch[%s] = %+v, want %+v", created.ID, got, av)
	}
}

func TestCookFlow(t *testing.T) {
	srv := newTestServer(t)

	onion := addItem(t, srv, "home", "양파", 3, "개")
	egg := addItem(t, srv, "home", "계란", 2, "개")

	var resp struct {
		Applied int                 `json:"applied"`
		Entries []consume.PlanEntry `json:"entries"`
	}
	code := doJSON(t, http.MethodPost, srv.URL+"/api/v1/fridges/home/cook", M{
		"recipe_id": "soup",
		"deductions": []M{
			{"item_id": onion.ID, "requested": 1, "max": 3},
			{"item_id": egg.ID, "requested": 2.00003, "max": 2},
		},
	}, &resp)
	if code != http.StatusOK {
		t.Fatalf("cook: status %d", code)
	}
	if resp.Applied != 2 {
		t.Fatalf("applied = %d, want 2", resp.Applied)
	}

	var items []models.FridgeItem
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/fridges/home/items", nil, &items); code != http.StatusOK {
		t.Fatalf("list items: status %d", code)
	}
	// Eggs were consumed to zero and removed; onions were decremented.
	if len(items) != 1 || items[0].ID != onion.ID || items[0].Quantity != 2 {
		t.Fatalf("items after cook = %+v", items)
	}

	var records []models.UsageRecord
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/fridges/home/history", nil, &records); code != http.StatusOK {
		t.Fatalf("history: status %d", code)
	}
	if len(records) != 2 {
		t.Fatalf("history records = %d, want 2", len(records))
	}
	for _, rec := range records {
		if rec.Context != "recipe:soup" {
			t.Errorf("record context = %q, want recipe:soup", rec.Context)
		}
	}
}

func TestCookRejectsOverConsumption(t *testing.T) {
	srv := newTestServer(t)

	onion := addItem(t, srv, "home", "양파", 3, "개")
	egg := addItem(t, srv, "home", "계란", 2, "개")

	var rejection struct {
		Error     string  `json:"error"`
		ItemName  string  `json:"item_name"`
		Requested float64 `json:"requested"`
		Available float64 `json:"available"`
	}
	code := doJSON(t, http.MethodPost, srv.URL+"/api/v1/fridges/home/cook", M{
		"deductions": []M{
			{"item_id": onion.ID, "requested": 1, "max": 3},
			{"item_id": egg.ID, "requested": 5, "max": 2},
		},
	}, &rejection)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("cook: status %d, want 422", code)
	}
	if rejection.ItemName != "계란" || rejection.Requested != 5 || rejection.Available != 2 {
		t.Fatalf("rejection = %+v", rejection)
	}

	// Nothing was applied, including the valid onion entry.
	var items []models.FridgeItem
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/fridges/home/items", nil, &items); code != http.StatusOK {
		t.Fatalf("list items: status %d", code)
	}
	for _, item := range items {
		if item.ID == onion.ID && item.Quantity != 3 {
			t.Errorf("onion quantity = %v, want untouched 3", item.Quantity)
		}
	}

	code = doJSON(t, http.MethodPost, srv.URL+"/api/v1/fridges/home/cook", M{
		"deductions": []M{{"item_id": "no-such-item", "requested": 1, "max": 1}},
	}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("cook with unknown item: status %d, want 400", code)
	}
}

func TestRecipeSearchAndFavorites(t *testing.T) {
	srv := newTestServer(t)

	titles := []string{"김치찌개", "된장찌개", "계란말이"}
	ids := make(map[string]string, len(titles))
	for _, title := range titles {
		var created models.Recipe
		if code := doJSON(t, http.MethodPost, srv.URL+"/api/v1/recipes", M{"title": title, "ingredients": []M{}}, &created); code != http.StatusCreated {
			t.Fatalf("create %s: status %d", title, code)
		}
		ids[title] = created.ID
	}

	var found []models.Recipe
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/recipes?search=찌개", nil, &found); code != http.StatusOK {
		t.Fatalf("search: status %d", code)
	}
	if len(found) != 2 {
		t.Fatalf("search results = %d, want 2", len(found))
	}

	var terms []string
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/search-history", nil, &terms); code != http.StatusOK {
		t.Fatalf("search history: status %d", code)
	}
	if len(terms) != 1 || terms[0] != "찌개" {
		t.Fatalf("search history = %v, want [찌개]", terms)
	}

	if code := doJSON(t, http.MethodPut, srv.URL+"/api/v1/recipes/recipe/"+ids["계란말이"]+"/favorite", nil, nil); code != http.StatusOK {
		t.Fatalf("set favorite: status %d", code)
	}
	var favorites []models.Recipe
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/favorites", nil, &favorites); code != http.StatusOK {
		t.Fatalf("favorites: status %d", code)
	}
	if len(favorites) != 1 || favorites[0].Title != "계란말이" {
		t.Fatalf("favorites = %+v", favorites)
	}

	if code := doJSON(t, http.MethodDelete, srv.URL+"/api/v1/search-history", nil, nil); code != http.StatusOK {
		t.Fatalf("clear search history: status %d", code)
	}
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/search-history", nil, &terms); code != http.StatusOK {
		t.Fatalf("search history after clear: status %d", code)
	}
	if len(terms) != 0 {
		t.Fatalf("search history after clear = %v, want empty", terms)
	}
}

func TestSuggestionsUnavailableWithoutLLM(t *testing.T) {
	srv := newTestServer(t)

	code := doJSON(t, http.MethodPost, srv.URL+"/api/v1/fridges/home/suggestions", M{"count": 3}, nil)
	if code != http.StatusServiceUnavailable {
		t.Fatalf("suggestions: status %d, want 503", code)
	}

	code = doJSON(t, http.MethodPost, srv.URL+"/api/v1/fridges/home/items/quickadd", M{"text": "계란 10개"}, nil)
	if code != http.StatusServiceUnavailable {
		t.Fatalf("quickadd: status %d, want 503", code)
	}
}

func TestRecipeNotFound(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]interface{}
	code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/recipes/recipe/missing", nil, &body)
	if code != http.StatusNotFound {
		t.Fatalf("get missing recipe: status %d, want 404", code)
	}
	if _, ok := body["error"]; !ok {
		t.Fatalf("error body = %v, want error field", body)
	}

	code = doJSON(t, http.MethodGet, srv.URL+fmt.Sprintf("/api/v1/fridges/home/availability/%s", "missing"), nil, nil)
	if code != http.StatusNotFound {
		t.Fatalf("availability for missing recipe: status %d, want 404", code)
	}
}
