package service

import (
	"errors"
	"testing"

	"github.com/shoplite/internal/models"
)

func filterFixture() []models.Product {
	return []models.Product{
		{ID: 5, Name: "Console", Category: "Gaming", Price: models.NewMoneyFromFloat(300), Rating: 4.5},
		{ID: 2, Name: "Earbuds", Category: "Audio", Price: models.NewMoneyFromFloat(80), Rating: 4.0},
		{ID: 9, Name: "Soundbar", Category: "Audio", Price: models.NewMoneyFromFloat(80), Rating: 3.5},
		{ID: 1, Name: "Watch", Category: "Wearables", Price: models.NewMoneyFromFloat(150), Rating: 4.9},
		{ID: 4, Name: "Speaker", Category: "Audio", Price: models.NewMoneyFromFloat(40), Rating: 4.0},
	}
}

func productIDs(products []models.Product) []models.ProductID {
	ids := make([]models.ProductID, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}
	return ids
}

func equalIDs(got []models.ProductID, want ...models.ProductID) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestApplyProductFilterPriceAscIsStable(t *testing.T) {
	products := filterFixture()
	result := ApplyProductFilter(products, FilterSelection{Sort: SortModePriceAsc})
	// 2 与 9 同价，保持输入顺序
	if ids := productIDs(result); !equalIDs(ids, 4, 2, 9, 1, 5) {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestApplyProductFilterCategoryDefaultSort(t *testing.T) {
	result := ApplyProductFilter(filterFixture(), FilterSelection{Categories: []string{"Audio"}})
	if ids := productIDs(result); !equalIDs(ids, 2, 4, 9) {
		t.Fatalf("expected audio products by ascending id, got %v", ids)
	}
	for _, product := range result {
		if product.Category != "Audio" {
			t.Fatalf("unexpected category %s", product.Category)
		}
	}
}

func TestApplyProductFilterMultipleCategoriesRatingDesc(t *testing.T) {
	result := ApplyProductFilter(filterFixture(), FilterSelection{
		Categories: []string{"Gaming", "Wearables"},
		Sort:       SortModeRatingDesc,
	})
	if ids := productIDs(result); !equalIDs(ids, 1, 5) {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestApplyProductFilterDoesNotMutateInput(t *testing.T) {
	products := filterFixture()
	before := productIDs(products)
	_ = ApplyProductFilter(products, FilterSelection{Sort: SortModePriceDesc})
	_ = ApplyProductFilter(products, FilterSelection{})
	if after := productIDs(products); !equalIDs(after, before...) {
		t.Fatalf("input was mutated: %v -> %v", before, after)
	}
}

func TestApplyProductFilterEmptyInput(t *testing.T) {
	result := ApplyProductFilter(nil, FilterSelection{Categories: []string{"Audio"}})
	if result == nil || len(result) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", result)
	}
}

func TestParseSortModeAliases(t *testing.T) {
	cases := map[string]SortMode{
		"":            SortModeDefault,
		"default":     SortModeDefault,
		"price-asc":   SortModePriceAsc,
		"PRICE-DESC":  SortModePriceDesc,
		"plowtohigh":  SortModePriceAsc,
		"phightolow":  SortModePriceDesc,
		"rlowtohigh":  SortModeRatingAsc,
		"rhightolow":  SortModeRatingDesc,
		" rating-asc": SortModeRatingAsc,
	}
	for raw, want := range cases {
		got, err := ParseSortMode(raw)
		if err != nil || got != want {
			t.Fatalf("parse %q: got %q err=%v, want %q", raw, got, err, want)
		}
	}
	if _, err := ParseSortMode("newest"); !errors.Is(err, ErrInvalidSortMode) {
		t.Fatalf("unknown sort mode should be rejected, got %v", err)
	}
}

func TestNewFilterSelection(t *testing.T) {
	selection, err := NewFilterSelection([]string{"Audio,Gaming", "Audio", " "}, "rhightolow")
	if err != nil {
		t.Fatalf("build selection failed: %v", err)
	}
	if len(selection.Categories) != 2 || selection.Categories[0] != "Audio" || selection.Categories[1] != "Gaming" {
		t.Fatalf("unexpected categories %v", selection.Categories)
	}
	if selection.Sort != SortModeRatingDesc {
		t.Fatalf("unexpected sort %q", selection.Sort)
	}
	if _, err := NewFilterSelection([]string{"Toys"}, ""); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("unknown category should be rejected, got %v", err)
	}
	empty, err := NewFilterSelection(nil, "")
	if err != nil || !empty.IsEmpty() {
		t.Fatalf("expected empty selection, got %+v err=%v", empty, err)
	}
}
