package plan

import "math"

// MacroTarget 單一餐別的熱量與巨量營養素目標
type MacroTarget struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Distribution 每個餐別的目標
type Distribution map[MealType]MacroTarget

// ratioTable 固定比例表
// 一天四餐以上（含點心）：早餐 25%、午餐 30%、晚餐 35%、點心 10%
// 一天三餐（無點心）：早餐 27%、午餐 33%、晚餐 40%
func ratioTable(mealsPerDay int) map[MealType]float64 {
	if mealsPerDay >= 4 {
		return map[MealType]float64{
			MealTypeBreakfast: 0.25,
			MealTypeLunch:     0.30,
			MealTypeDinner:    0.35,
			MealTypeSnack:     0.10,
		}
	}
	return map[MealType]float64{
		MealTypeBreakfast: 0.27,
		MealTypeLunch:     0.33,
		MealTypeDinner:    0.40,
		MealTypeSnack:     0,
	}
}

// ActiveMealTypes 依一天餐數回傳啟用的餐別（固定順序）
func ActiveMealTypes(mealsPerDay int) []MealType {
	if mealsPerDay >= 4 {
		return []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}
	}
	return []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner}
}

// Distribute 把每日目標按比例表拆成各餐別目標
// 模板自身的營養比例不參與計算，目標永遠反映使用者的實際目標
func Distribute(goals UserGoals, mealsPerDay int) Distribution {
	ratios := ratioTable(mealsPerDay)
	dist := make(Distribution, len(ratios))
	for _, mt := range ActiveMealTypes(mealsPerDay) {
		r := ratios[mt]
		dist[mt] = MacroTarget{
			Calories: roundRatio(goals.Calories, r),
			Protein:  roundRatio(goals.Protein, r),
			Carbs:    roundRatio(goals.Carbs, r),
			Fat:      roundRatio(goals.Fat, r),
		}
	}
	return dist
}

func roundRatio(total int, ratio float64) int {
	return int(math.Round(float64(total) * ratio))
}
