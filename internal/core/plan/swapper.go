package plan

import (
	"fmt"
	"math/rand"
)

// SwapRequest 換餐請求
type SwapRequest struct {
	DayIndex        int      `json:"day_index"` // 0..6
	MealType        MealType `json:"meal_type"`
	CurrentMealName string   `json:"current_meal_name"`
	Goals           UserGoals
	MealsPerDay     int
	Reason          string `json:"reason,omitempty"` // 僅供記錄，不參與演算法
}

// SwapResult 換餐結果
type SwapResult struct {
	Success bool   `json:"success"`
	NewMeal *Meal  `json:"new_meal,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Swapper 本地換餐器
type Swapper struct {
	catalog *Catalog
	rng     *rand.Rand
}

// NewSwapper 創建換餐器
func NewSwapper(catalog *Catalog, rng *rand.Rand) *Swapper {
	return &Swapper{catalog: catalog, rng: rng}
}

// Swap 替換計畫中指定 (日, 餐別) 的一餐，就地修改 weeklyPlan
// 候選池排除與當前餐點同名的模板；池空時退回完整模板列表
// （寧可換到同一道也不失敗）。換完立即重算當日總計。
func (s *Swapper) Swap(weeklyPlan *WeeklyPlan, req SwapRequest) SwapResult {
	if weeklyPlan == nil || req.DayIndex < 0 || req.DayIndex >= len(weeklyPlan.Days) {
		return SwapResult{Success: false, Error: "day not found"}
	}
	day := &weeklyPlan.Days[req.DayIndex]

	slot := day.MealOfType(req.MealType)
	if slot < 0 {
		return SwapResult{Success: false, Error: fmt.Sprintf("no %s meal on day %d", req.MealType, req.DayIndex+1)}
	}

	pool := s.catalog.TemplatesFor(req.MealType)
	if len(pool) == 0 {
		return SwapResult{Success: false, Error: "no templates for meal type"}
	}

	candidates := make([]MealTemplate, 0, len(pool))
	for _, tpl := range pool {
		if tpl.Name != req.CurrentMealName {
			candidates = append(candidates, tpl)
		}
	}
	if len(candidates) == 0 {
		candidates = pool
	}

	chosen := candidates[s.rng.Intn(len(candidates))]

	// 目標沿用生成時同一張比例表，換餐不改變營養目標
	target := Distribute(req.Goals, req.MealsPerDay)[req.MealType]
	newMeal := ScaleToTarget(chosen, req.MealType, target)

	day.Meals[slot] = newMeal
	day.RecomputeTotals()

	return SwapResult{Success: true, NewMeal: &newMeal}
}
