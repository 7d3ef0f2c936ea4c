package plan

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"meal-planner/internal/pkg/common"
)

// 欄位缺失時的預設值
const (
	defaultPrepTime = 15
	defaultCookTime = 20
)

// Normalizer 把形狀不固定的上游計畫回應轉成標準模型
// 上游欄位永遠不可信：缺欄位一律補預設值，每日總計一律本地重算，
// 只有「日項目不是物件」這一種情況視為整包格式錯誤
type Normalizer struct{}

// NewNormalizer 創建 normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize 解析原始回應 JSON 並轉成 WeeklyPlan
// 依序識別兩種已知格式：
//  1. {success: true, weeklyPlan|mealPlan: [day...]}
//  2. {ok: true, plan: {...}}
func (n *Normalizer) Normalize(raw []byte, now time.Time) (*WeeklyPlan, error) {
	var payload map[string]interface{}
	// 上游代理的是 LLM，回應偶爾帶著 ```json 圍欄
	if err := common.ParseJSON(common.StripCodeFence(string(raw)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedUpstream, err)
	}
	return n.NormalizePayload(payload, now)
}

// NormalizePayload 同 Normalize，但接受已解碼的 payload
func (n *Normalizer) NormalizePayload(payload map[string]interface{}, now time.Time) (*WeeklyPlan, error) {
	days, err := extractDays(payload)
	if err != nil {
		return nil, err
	}

	sunday := MostRecentSunday(now)
	plan := &WeeklyPlan{Days: make([]DayPlan, 0, len(days))}
	for i, rawDay := range days {
		dayMap, ok := rawDay.(map[string]interface{})
		if !ok {
			// 日項目不是物件：整次生成視為失敗，不合併任何部分計畫
			return nil, fmt.Errorf("%w: day entry %d is not an object", common.ErrMalformedUpstream, i)
		}
		plan.Days = append(plan.Days, n.normalizeDay(dayMap, i, sunday))
	}

	// 週計畫固定七天：上游短給的補空日，多給的砍掉
	if len(plan.Days) != 7 {
		common.LogWarn("Upstream plan is not seven days, reshaping",
			zap.Int("upstream_days", len(plan.Days)),
		)
		for i := len(plan.Days); i < 7; i++ {
			plan.Days = append(plan.Days, emptyDay(i, sunday))
		}
		plan.Days = plan.Days[:7]
	}

	return plan, nil
}

// emptyDay 補位用的空日：正確的日期與星期，沒有餐點
func emptyDay(index int, sunday time.Time) DayPlan {
	date := sunday.AddDate(0, 0, index)
	day := DayPlan{
		DayNumber: index + 1,
		Date:      FormatLocalDate(date),
		DayName:   dayNames[int(date.Weekday())],
		Meals:     []Meal{},
	}
	day.RecomputeTotals()
	return day
}

// extractDays 按優先序找出日列表
func extractDays(payload map[string]interface{}) ([]interface{}, error) {
	// 格式 1：{success: true, weeklyPlan|mealPlan: [...]}
	if asBool(payload["success"]) {
		for _, key := range []string{"weeklyPlan", "mealPlan"} {
			if days, ok := payload[key].([]interface{}); ok {
				return days, nil
			}
		}
	}

	// 格式 2：{ok: true, plan: {...}}
	if asBool(payload["ok"]) {
		switch inner := payload["plan"].(type) {
		case []interface{}:
			return inner, nil
		case map[string]interface{}:
			for _, key := range []string{"weeklyPlan", "mealPlan", "days"} {
				if days, ok := inner[key].([]interface{}); ok {
					return days, nil
				}
			}
		}
	}

	return nil, fmt.Errorf("%w: no recognized plan shape", common.ErrMalformedUpstream)
}

// normalizeDay 轉換單日項目
func (n *Normalizer) normalizeDay(dayMap map[string]interface{}, index int, sunday time.Time) DayPlan {
	date := sunday.AddDate(0, 0, index)
	day := DayPlan{
		DayNumber: coalesceInt(index+1, dayMap["dayNumber"], dayMap["day"]),
		Date:      FormatLocalDate(date),
		DayName:   dayNames[int(date.Weekday())],
		Meals:     []Meal{},
	}
	if s := asString(dayMap["date"]); s != "" {
		day.Date = s
	}
	if s := asString(dayMap["dayName"]); s != "" {
		day.DayName = s
	}

	// 欺騙日：不要求 meals 欄位存在，直接給空餐點與全零總計
	if asBool(dayMap["isCheatDay"]) {
		day.RecomputeTotals()
		return day
	}

	if meals, ok := dayMap["meals"].([]interface{}); ok {
		for j, rawMeal := range meals {
			mealMap, ok := rawMeal.(map[string]interface{})
			if !ok {
				continue // 單一餐點壞掉就跳過，不拖垮整天
			}
			day.Meals = append(day.Meals, n.normalizeMeal(mealMap, j))
		}
	}

	// 每日總計一律本地重算，就算上游給了也不信
	day.RecomputeTotals()
	return day
}

// normalizeMeal 轉換單一餐點，逐欄位按優先序補值
func (n *Normalizer) normalizeMeal(mealMap map[string]interface{}, index int) Meal {
	macros, _ := mealMap["macros"].(map[string]interface{})

	mealType := MealType(asString(mealMap["mealType"]))
	if mealType == "" {
		mealType = MealType(asString(mealMap["type"]))
	}
	if mealType == "" {
		// 沒給餐別時按位置推斷
		pos := index
		if pos >= len(MealTypes) {
			pos = len(MealTypes) - 1
		}
		mealType = MealTypes[pos]
	}

	id := asString(mealMap["id"])
	if id == "" {
		id = newMealID()
	}

	meal := Meal{
		ID:           id,
		MealType:     mealType,
		Name:         coalesceString(mealMap["name"], mealMap["dishName"]),
		Description:  asString(mealMap["description"]),
		Calories:     coalesceInt(0, mealMap["calories"]),
		Protein:      coalesceInt(0, mealMap["protein"], macroField(macros, "protein")),
		Carbs:        coalesceInt(0, mealMap["carbs"], macroField(macros, "carbs")),
		Fat:          coalesceInt(0, mealMap["fat"], macroField(macros, "fat")),
		PrepTime:     coalesceInt(defaultPrepTime, mealMap["prepTime"], mealMap["prepMinutes"]),
		CookTime:     coalesceInt(defaultCookTime, mealMap["cookTime"], mealMap["cookMinutes"]),
		Servings:     coalesceInt(1, mealMap["servings"]),
		Ingredients:  normalizeIngredients(mealMap["ingredients"]),
		Instructions: normalizeInstructions(mealMap["instructions"]),
	}
	return meal
}

func macroField(macros map[string]interface{}, key string) interface{} {
	if macros == nil {
		return nil
	}
	return macros[key]
}

// normalizeIngredients 非陣列值一律當空陣列，不拋錯
func normalizeIngredients(v interface{}) []Ingredient {
	raw, ok := v.([]interface{})
	if !ok {
		return []Ingredient{}
	}
	out := make([]Ingredient, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		ing := Ingredient{
			Name:     asString(m["name"]),
			Amount:   asAmountString(m["amount"]),
			Unit:     asString(m["unit"]),
			Category: asString(m["category"]),
		}
		if ing.Name == "" {
			continue
		}
		out = append(out, ing)
	}
	return out
}

// normalizeInstructions 非陣列值一律當空陣列
func normalizeInstructions(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// --- 鬆散型別轉換 helpers ---
// 解碼用了 UseNumber，數值會是 json.Number；上游也可能直接給字串

func asBool(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	}
	return ""
}

// asAmountString amount 可能是數字或字串，統一轉字串保留原值
func asAmountString(v interface{}) string {
	switch a := v.(type) {
	case string:
		return a
	case json.Number:
		return a.String()
	case float64:
		return strconv.FormatFloat(a, 'f', -1, 64)
	}
	return ""
}

// asInt 寬鬆轉整數，失敗回傳 (0, false)
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return int(f + 0.5), true
		}
	case float64:
		return int(n + 0.5), true
	case int:
		return n, true
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return int(f + 0.5), true
		}
	}
	return 0, false
}

// coalesceInt 依序取第一個可轉換的值，全部失敗用 fallback
func coalesceInt(fallback int, candidates ...interface{}) int {
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if n, ok := asInt(c); ok {
			return n
		}
	}
	return fallback
}

// coalesceString 依序取第一個非空字串
func coalesceString(candidates ...interface{}) string {
	for _, c := range candidates {
		if s := asString(c); s != "" {
			return s
		}
	}
	return ""
}
