package plan

import "math"

// Summarize 計算週摘要
// 平均只除以有餐點的天數（不能直接除 7，可能有空天）；
// totalMeals 則是全部七天的餐數總和，空天也算進去（加零）
func Summarize(weeklyPlan *WeeklyPlan) *WeekSummary {
	summary := &WeekSummary{}
	if weeklyPlan == nil {
		return summary
	}

	var calories, protein, carbs, fat int
	daysWithMeals := 0
	for _, day := range weeklyPlan.Days {
		summary.TotalMeals += len(day.Meals)
		if len(day.Meals) == 0 {
			continue
		}
		daysWithMeals++
		calories += day.DailyTotals.Calories
		protein += day.DailyTotals.Protein
		carbs += day.DailyTotals.Carbs
		fat += day.DailyTotals.Fat
	}

	if daysWithMeals == 0 {
		return summary
	}

	summary.AvgDailyCalories = roundAvg(calories, daysWithMeals)
	summary.AvgDailyProtein = roundAvg(protein, daysWithMeals)
	summary.AvgDailyCarbs = roundAvg(carbs, daysWithMeals)
	summary.AvgDailyFat = roundAvg(fat, daysWithMeals)
	return summary
}

func roundAvg(total, days int) int {
	return int(math.Round(float64(total) / float64(days)))
}
