package plan

import "testing"

func dayWithTotals(calories, protein, carbs, fat, meals int) DayPlan {
	day := DayPlan{}
	for i := 0; i < meals; i++ {
		day.Meals = append(day.Meals, Meal{})
	}
	day.DailyTotals = DailyTotals{Calories: calories, Protein: protein, Carbs: carbs, Fat: fat}
	return day
}

func TestSummarizeAveragesOverDaysWithMeals(t *testing.T) {
	weekly := &WeeklyPlan{Days: []DayPlan{
		dayWithTotals(2000, 150, 200, 70, 3),
		dayWithTotals(1800, 140, 180, 60, 3),
		{}, // cheat day, must not drag the averages down
		dayWithTotals(2200, 160, 220, 80, 4),
	}}

	summary := Summarize(weekly)

	if summary.AvgDailyCalories != 2000 {
		t.Errorf("avg calories = %d, want 2000 (6000 / 3 days with meals)", summary.AvgDailyCalories)
	}
	if summary.AvgDailyProtein != 150 {
		t.Errorf("avg protein = %d, want 150", summary.AvgDailyProtein)
	}
	if summary.TotalMeals != 10 {
		t.Errorf("total meals = %d, want 10 (empty day contributes zero)", summary.TotalMeals)
	}
}

func TestSummarizeRounding(t *testing.T) {
	weekly := &WeeklyPlan{Days: []DayPlan{
		dayWithTotals(2000, 100, 0, 0, 3),
		dayWithTotals(2001, 101, 0, 0, 3),
	}}

	summary := Summarize(weekly)
	// 4001 / 2 = 2000.5 rounds to 2001.
	if summary.AvgDailyCalories != 2001 {
		t.Errorf("avg calories = %d, want 2001", summary.AvgDailyCalories)
	}
}

func TestSummarizeEmptyPlan(t *testing.T) {
	for _, weekly := range []*WeeklyPlan{nil, {}, {Days: []DayPlan{{}, {}}}} {
		summary := Summarize(weekly)
		if summary.AvgDailyCalories != 0 || summary.TotalMeals != 0 {
			t.Errorf("empty plan summary = %+v, want all zero", summary)
		}
	}
}
