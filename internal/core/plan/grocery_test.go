package plan

import (
	"reflect"
	"testing"
)

func planWithIngredients(meals ...[]Ingredient) *WeeklyPlan {
	weekly := &WeeklyPlan{}
	day := DayPlan{DayNumber: 1}
	for _, ings := range meals {
		day.Meals = append(day.Meals, Meal{Name: "m", Ingredients: ings})
	}
	weekly.Days = append(weekly.Days, day)
	return weekly
}

func TestAggregateGroceriesSumsByName(t *testing.T) {
	weekly := planWithIngredients(
		[]Ingredient{{Name: "Greek yogurt", Amount: "1", Unit: "cup", Category: CategoryDairy}},
		[]Ingredient{{Name: "Greek yogurt", Amount: "0.75", Unit: "cup", Category: CategoryDairy}},
	)

	list := AggregateGroceries(weekly)
	if len(list) != 1 || list[0].Category != CategoryDairy {
		t.Fatalf("unexpected categories: %+v", list)
	}
	items := list[0].Items
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1 aggregated entry", len(items))
	}
	if items[0].Amount != "1.8" {
		t.Errorf("amount = %q, want \"1.8\" (1 + 0.75 rounded to one decimal)", items[0].Amount)
	}
	if items[0].Unit != "cup" {
		t.Errorf("unit = %q, want first-seen \"cup\"", items[0].Unit)
	}
	if items[0].Checked {
		t.Error("aggregated item starts checked")
	}
}

func TestAggregateGroceriesUnitBlindSum(t *testing.T) {
	// Mismatched units are still summed numerically; the first unit wins.
	weekly := planWithIngredients(
		[]Ingredient{{Name: "Olive oil", Amount: "1", Unit: "cup", Category: CategoryPantry}},
		[]Ingredient{{Name: "Olive oil", Amount: "2", Unit: "tbsp", Category: CategoryPantry}},
	)

	items := AggregateGroceries(weekly)[0].Items
	if items[0].Amount != "3" || items[0].Unit != "cup" {
		t.Errorf("got %s %s, want 3 cup", items[0].Amount, items[0].Unit)
	}
}

func TestAggregateGroceriesNonNumericAmount(t *testing.T) {
	weekly := planWithIngredients(
		[]Ingredient{{Name: "Salt", Amount: "a pinch", Unit: "", Category: CategorySpices}},
		[]Ingredient{{Name: "Salt", Amount: "a pinch", Unit: "", Category: CategorySpices}},
	)

	items := AggregateGroceries(weekly)[0].Items
	// Each non-numeric amount counts as 1.
	if items[0].Amount != "2" {
		t.Errorf("amount = %q, want \"2\"", items[0].Amount)
	}
}

func TestAggregateGroceriesCategoryOrder(t *testing.T) {
	weekly := planWithIngredients([]Ingredient{
		{Name: "Rice", Amount: "1", Unit: "cup", Category: CategoryGrains},
		{Name: "Chicken", Amount: "200", Unit: "g", Category: CategoryProtein},
		{Name: "Spinach", Amount: "1", Unit: "cup", Category: CategoryProduce},
		{Name: "Mystery", Amount: "1", Unit: "", Category: ""},
	})

	list := AggregateGroceries(weekly)
	got := make([]string, len(list))
	for i, cat := range list {
		got[i] = cat.Category
	}
	// Fixed order with empty categories omitted; blank category falls into Other.
	want := []string{CategoryProduce, CategoryProtein, CategoryGrains, CategoryOther}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("category order = %v, want %v", got, want)
	}
}

func TestAggregateGroceriesDeterministic(t *testing.T) {
	weekly := planWithIngredients([]Ingredient{
		{Name: "Spinach", Amount: "1", Unit: "cup", Category: CategoryProduce},
		{Name: "Tomato", Amount: "2", Unit: "whole", Category: CategoryProduce},
		{Name: "Avocado", Amount: "1", Unit: "whole", Category: CategoryProduce},
	})

	first := AggregateGroceries(weekly)
	for i := 0; i < 20; i++ {
		if !reflect.DeepEqual(AggregateGroceries(weekly), first) {
			t.Fatal("aggregation output is not deterministic across runs")
		}
	}

	// Items keep first-seen order within the category.
	names := []string{first[0].Items[0].Name, first[0].Items[1].Name, first[0].Items[2].Name}
	want := []string{"Spinach", "Tomato", "Avocado"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("item order = %v, want first-seen %v", names, want)
	}
}

func TestAggregateGroceriesEmptyPlan(t *testing.T) {
	if got := AggregateGroceries(nil); len(got) != 0 {
		t.Errorf("nil plan: got %+v, want empty list", got)
	}
	if got := AggregateGroceries(&WeeklyPlan{}); len(got) != 0 {
		t.Errorf("empty plan: got %+v, want empty list", got)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.75, "1.8"},
		{2.0, "2"},
		{0.5, "0.5"},
		{3.04, "3"},
		{2.25, "2.3"},
		{10, "10"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"2", 2},
		{"0.75", 0.75},
		{" 1.5 ", 1.5},
		{"a pinch", 1},
		{"", 1},
		{"to taste", 1},
	}
	for _, tt := range tests {
		if got := ParseAmount(tt.in); got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShoppingExport(t *testing.T) {
	list := []GroceryCategory{
		{Category: CategoryProduce, Items: []GroceryItem{
			{Name: "Spinach", Amount: "1.5", Unit: "cup"},
			{Name: "Tomato", Amount: "2", Unit: "whole", Checked: true},
		}},
		{Category: CategorySpices, Items: []GroceryItem{
			{Name: "Salt", Amount: "a pinch", Unit: ""},
		}},
	}

	items := ShoppingExport(list)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (checked items excluded)", len(items))
	}
	// Fractions round up to whole purchasable quantities.
	if items[0].Name != "Spinach" || items[0].Quantity != 2 {
		t.Errorf("spinach quantity = %d, want ceil(1.5) = 2", items[0].Quantity)
	}
	if items[1].Name != "Salt" || items[1].Quantity != 1 {
		t.Errorf("salt quantity = %d, want 1", items[1].Quantity)
	}
}

func TestSetChecked(t *testing.T) {
	list := []GroceryCategory{
		{Category: CategoryDairy, Items: []GroceryItem{{Name: "Milk", Amount: "1", Unit: "l"}}},
	}

	if !SetChecked(list, CategoryDairy, "Milk", true) {
		t.Fatal("SetChecked failed to find an existing item")
	}
	if !list[0].Items[0].Checked {
		t.Error("item not marked checked")
	}
	if !SetChecked(list, CategoryDairy, "Milk", false) {
		t.Fatal("SetChecked failed to uncheck")
	}
	if list[0].Items[0].Checked {
		t.Error("item still checked after uncheck")
	}

	if SetChecked(list, CategoryDairy, "Butter", true) {
		t.Error("SetChecked reported success for a missing item")
	}
	if SetChecked(list, CategoryProduce, "Milk", true) {
		t.Error("SetChecked matched across categories")
	}
}
