package plan

import "testing"

func TestDistributeThreeMeals(t *testing.T) {
	goals := UserGoals{Calories: 2000, Protein: 150, Carbs: 200, Fat: 70}
	dist := Distribute(goals, 3)

	tests := []struct {
		mealType MealType
		calories int
	}{
		{MealTypeBreakfast, 540}, // 27%
		{MealTypeLunch, 660},     // 33%
		{MealTypeDinner, 800},    // 40%
	}
	for _, tt := range tests {
		got, ok := dist[tt.mealType]
		if !ok {
			t.Fatalf("missing target for %s", tt.mealType)
		}
		if got.Calories != tt.calories {
			t.Errorf("%s calories = %d, want %d", tt.mealType, got.Calories, tt.calories)
		}
	}

	if _, ok := dist[MealTypeSnack]; ok {
		t.Error("snack target should not exist for 3 meals per day")
	}
}

func TestDistributeFourMeals(t *testing.T) {
	goals := UserGoals{Calories: 2000, Protein: 160, Carbs: 240, Fat: 80}
	dist := Distribute(goals, 4)

	tests := []struct {
		mealType MealType
		calories int
		protein  int
	}{
		{MealTypeBreakfast, 500, 40}, // 25%
		{MealTypeLunch, 600, 48},     // 30%
		{MealTypeDinner, 700, 56},    // 35%
		{MealTypeSnack, 200, 16},     // 10%
	}
	for _, tt := range tests {
		got := dist[tt.mealType]
		if got.Calories != tt.calories {
			t.Errorf("%s calories = %d, want %d", tt.mealType, got.Calories, tt.calories)
		}
		if got.Protein != tt.protein {
			t.Errorf("%s protein = %d, want %d", tt.mealType, got.Protein, tt.protein)
		}
	}
}

func TestDistributeRatiosSumToWhole(t *testing.T) {
	goals := UserGoals{Calories: 2000, Protein: 150, Carbs: 200, Fat: 70}

	for _, mealsPerDay := range []int{3, 4, 5} {
		dist := Distribute(goals, mealsPerDay)
		sum := 0
		for _, target := range dist {
			sum += target.Calories
		}
		// Per-meal rounding may drift by a couple of calories at most.
		if diff := sum - goals.Calories; diff < -2 || diff > 2 {
			t.Errorf("mealsPerDay=%d: calories sum = %d, want ~%d", mealsPerDay, sum, goals.Calories)
		}
	}
}

func TestActiveMealTypes(t *testing.T) {
	if got := ActiveMealTypes(3); len(got) != 3 {
		t.Errorf("3 meals per day: got %d active types, want 3", len(got))
	}
	active := ActiveMealTypes(4)
	if len(active) != 4 || active[3] != MealTypeSnack {
		t.Errorf("4 meals per day: got %v, want snack as fourth type", active)
	}
	// Anything above 4 still uses the 4-meal table.
	if got := ActiveMealTypes(6); len(got) != 4 {
		t.Errorf("6 meals per day: got %d active types, want 4", len(got))
	}
}
