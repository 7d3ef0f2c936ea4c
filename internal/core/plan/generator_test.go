package plan

import (
	"math/rand"
	"sync"
	"testing"
	"time"
)

func newTestGenerator(seed int64) *Generator {
	return NewGenerator(NewCatalog(), rand.New(rand.NewSource(seed)))
}

var testGoals = UserGoals{Calories: 2000, Protein: 150, Carbs: 200, Fat: 70}

func TestGenerateSevenDaysFromSunday(t *testing.T) {
	gen := newTestGenerator(1)
	// A Wednesday; the plan must still start on the preceding Sunday.
	now := time.Date(2026, 8, 19, 15, 30, 0, 0, time.Local)

	weekly := gen.Generate(testGoals, MealPlanPreferences{MealsPerDay: 3}, now)

	if len(weekly.Days) != 7 {
		t.Fatalf("got %d days, want 7", len(weekly.Days))
	}
	if weekly.Days[0].Date != "2026-08-16" {
		t.Errorf("first day = %s, want 2026-08-16 (Sunday)", weekly.Days[0].Date)
	}
	if weekly.Days[0].DayName != "Sunday" {
		t.Errorf("first day name = %s, want Sunday", weekly.Days[0].DayName)
	}
	if weekly.Days[6].Date != "2026-08-22" {
		t.Errorf("last day = %s, want 2026-08-22 (Saturday)", weekly.Days[6].Date)
	}
	for i, day := range weekly.Days {
		if day.DayNumber != i+1 {
			t.Errorf("day %d: DayNumber = %d, want %d", i, day.DayNumber, i+1)
		}
	}
}

func TestGenerateSundayInputStaysSameDay(t *testing.T) {
	gen := newTestGenerator(1)
	// Late Sunday evening must not slide to the previous week.
	now := time.Date(2026, 8, 16, 23, 45, 0, 0, time.Local)

	weekly := gen.Generate(testGoals, MealPlanPreferences{MealsPerDay: 3}, now)
	if weekly.Days[0].Date != "2026-08-16" {
		t.Errorf("first day = %s, want 2026-08-16", weekly.Days[0].Date)
	}
}

func TestGenerateMealsMatchTargets(t *testing.T) {
	gen := newTestGenerator(42)
	now := time.Date(2026, 8, 19, 12, 0, 0, 0, time.Local)

	weekly := gen.Generate(testGoals, MealPlanPreferences{MealsPerDay: 4}, now)
	dist := Distribute(testGoals, 4)

	for _, day := range weekly.Days {
		if len(day.Meals) != 4 {
			t.Fatalf("day %d: got %d meals, want 4", day.DayNumber, len(day.Meals))
		}
		for _, meal := range day.Meals {
			target := dist[meal.MealType]
			if meal.Calories != target.Calories {
				t.Errorf("day %d %s: calories = %d, want %d",
					day.DayNumber, meal.MealType, meal.Calories, target.Calories)
			}
			if meal.Protein != target.Protein || meal.Carbs != target.Carbs || meal.Fat != target.Fat {
				t.Errorf("day %d %s: macros (%d/%d/%d) do not match target (%d/%d/%d)",
					day.DayNumber, meal.MealType,
					meal.Protein, meal.Carbs, meal.Fat,
					target.Protein, target.Carbs, target.Fat)
			}
		}
	}
}

func TestGenerateTotalsInvariant(t *testing.T) {
	gen := newTestGenerator(7)
	now := time.Date(2026, 8, 19, 12, 0, 0, 0, time.Local)

	weekly := gen.Generate(testGoals, MealPlanPreferences{MealsPerDay: 3}, now)
	for _, day := range weekly.Days {
		var want DailyTotals
		for _, m := range day.Meals {
			want.Calories += m.Calories
			want.Protein += m.Protein
			want.Carbs += m.Carbs
			want.Fat += m.Fat
		}
		if day.DailyTotals != want {
			t.Errorf("day %d: totals %+v do not match sum of meals %+v", day.DayNumber, day.DailyTotals, want)
		}
	}
}

func TestGenerateVarietyUntilPoolExhausted(t *testing.T) {
	catalog := NewCatalog()
	gen := NewGenerator(catalog, rand.New(rand.NewSource(3)))
	now := time.Date(2026, 8, 19, 12, 0, 0, 0, time.Local)

	weekly := gen.Generate(testGoals, MealPlanPreferences{MealsPerDay: 3}, now)

	poolSize := len(catalog.TemplatesFor(MealTypeBreakfast))
	seen := make(map[string]int)
	for _, day := range weekly.Days {
		for _, meal := range day.Meals {
			if meal.MealType == MealTypeBreakfast {
				seen[meal.Name]++
			}
		}
	}
	// The first poolSize picks must all be distinct; only after exhaustion
	// may a name repeat. With a pool of 5 over 7 days each name appears
	// at most twice.
	if len(seen) != poolSize {
		t.Errorf("got %d distinct breakfasts over the week, want %d (full pool)", len(seen), poolSize)
	}
	for name, count := range seen {
		if count > 2 {
			t.Errorf("breakfast %q repeated %d times, want at most 2", name, count)
		}
	}
}

func TestGenerateUniqueMealIDs(t *testing.T) {
	gen := newTestGenerator(9)
	now := time.Date(2026, 8, 19, 12, 0, 0, 0, time.Local)

	weekly := gen.Generate(testGoals, MealPlanPreferences{MealsPerDay: 3}, now)
	ids := make(map[string]bool)
	for _, day := range weekly.Days {
		for _, meal := range day.Meals {
			if meal.ID == "" {
				t.Fatal("meal without ID")
			}
			if ids[meal.ID] {
				t.Fatalf("duplicate meal ID %s", meal.ID)
			}
			ids[meal.ID] = true
		}
	}
}

func TestGenerateConcurrentUsers(t *testing.T) {
	// Generator and swapper share one random source across users; the
	// per-user guard does not serialize different users, so the source
	// itself must be safe to hit from many goroutines at once.
	catalog := NewCatalog()
	rng := NewLockedRand(1)
	gen := NewGenerator(catalog, rng)
	swapper := NewSwapper(catalog, rng)
	now := time.Date(2026, 8, 19, 12, 0, 0, 0, time.Local)

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				weekly := gen.Generate(testGoals, MealPlanPreferences{MealsPerDay: 3}, now)
				if len(weekly.Days) != 7 {
					errs <- "generated plan does not have 7 days"
					return
				}
				result := swapper.Swap(weekly, SwapRequest{
					DayIndex: 0, MealType: MealTypeLunch, Goals: testGoals, MealsPerDay: 3,
				})
				if !result.Success {
					errs <- "swap failed: " + result.Error
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}

func TestScaleToTargetCopiesTemplateStructure(t *testing.T) {
	tpl := MealTemplate{
		Name:        "Test Bowl",
		Description: "test",
		PrepTime:    5,
		CookTime:    12,
		Servings:    2,
		Ingredients: []Ingredient{{Name: "Rice", Amount: "1", Unit: "cup", Category: CategoryGrains}},
	}
	target := MacroTarget{Calories: 600, Protein: 45, Carbs: 70, Fat: 15}

	meal := ScaleToTarget(tpl, MealTypeLunch, target)

	if meal.Calories != 600 || meal.Protein != 45 || meal.Carbs != 70 || meal.Fat != 15 {
		t.Errorf("macros not replaced by target: %+v", meal)
	}
	if meal.Name != tpl.Name || meal.PrepTime != 5 || meal.CookTime != 12 || meal.Servings != 2 {
		t.Errorf("template structure not carried over: %+v", meal)
	}

	// Mutating the meal's ingredients must not touch the template.
	meal.Ingredients[0].Name = "changed"
	if tpl.Ingredients[0].Name != "Rice" {
		t.Error("template ingredients were mutated through the meal")
	}
}
