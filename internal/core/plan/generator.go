package plan

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// newMealID 每顆生成或換入的餐點都拿全新 ID
func newMealID() string {
	return uuid.New().String()
}

// UsedSet 每個餐別本週已用過的模板名稱
// 顯式傳遞而非閉包捕獲，測試時可以直接構造與檢查
type UsedSet map[MealType]map[string]bool

// NewUsedSet 創建空的已用模板集合
func NewUsedSet() UsedSet {
	return make(UsedSet)
}

// markUsed 記錄模板已用
func (u UsedSet) markUsed(mealType MealType, name string) {
	if u[mealType] == nil {
		u[mealType] = make(map[string]bool)
	}
	u[mealType][name] = true
}

// reset 清空指定餐別的已用集合（模板池耗盡後允許重複）
func (u UsedSet) reset(mealType MealType) {
	u[mealType] = make(map[string]bool)
}

// Generator 本地週計畫生成器
type Generator struct {
	catalog *Catalog
	rng     *rand.Rand
}

// NewGenerator 創建生成器，rng 顯式注入以便測試時用固定種子
func NewGenerator(catalog *Catalog, rng *rand.Rand) *Generator {
	return &Generator{catalog: catalog, rng: rng}
}

// Generate 生成七天計畫
// 每天每個啟用餐別挑一個本週未用過的模板；該餐別池耗盡時清空
// 已用集合允許重複（多樣性優雅降級，而不是直接失敗）
func (g *Generator) Generate(goals UserGoals, prefs MealPlanPreferences, now time.Time) *WeeklyPlan {
	dist := Distribute(goals, prefs.MealsPerDay)
	active := ActiveMealTypes(prefs.MealsPerDay)
	used := NewUsedSet()
	sunday := MostRecentSunday(now)

	days := make([]DayPlan, 0, 7)
	for i := 0; i < 7; i++ {
		date := sunday.AddDate(0, 0, i)
		day := DayPlan{
			DayNumber: i + 1,
			Date:      FormatLocalDate(date),
			DayName:   dayNames[int(date.Weekday())],
		}
		for _, mt := range active {
			tpl := g.pickTemplate(mt, used)
			if tpl == nil {
				continue // 該餐別沒有任何模板
			}
			day.Meals = append(day.Meals, ScaleToTarget(*tpl, mt, dist[mt]))
		}
		day.RecomputeTotals()
		days = append(days, day)
	}

	return &WeeklyPlan{Days: days}
}

// pickTemplate 在未用過的模板中等機率挑一個；全部用過就重置後再挑
func (g *Generator) pickTemplate(mealType MealType, used UsedSet) *MealTemplate {
	pool := g.catalog.TemplatesFor(mealType)
	if len(pool) == 0 {
		return nil
	}

	unused := make([]MealTemplate, 0, len(pool))
	for _, tpl := range pool {
		if !used[mealType][tpl.Name] {
			unused = append(unused, tpl)
		}
	}
	if len(unused) == 0 {
		used.reset(mealType)
		unused = pool
	}

	chosen := unused[g.rng.Intn(len(unused))]
	used.markUsed(mealType, chosen.Name)
	return &chosen
}

// ScaleToTarget 把模板縮放到目標
// 熱量與三個巨量營養素直接用目標覆蓋；模板只提供結構性內容
// （名稱、描述、時間、份量、食材、步驟）
func ScaleToTarget(tpl MealTemplate, mealType MealType, target MacroTarget) Meal {
	return Meal{
		ID:           newMealID(),
		MealType:     mealType,
		Name:         tpl.Name,
		Description:  tpl.Description,
		Calories:     target.Calories,
		Protein:      target.Protein,
		Carbs:        target.Carbs,
		Fat:          target.Fat,
		PrepTime:     tpl.PrepTime,
		CookTime:     tpl.CookTime,
		Servings:     tpl.Servings,
		Ingredients:  append([]Ingredient(nil), tpl.Ingredients...),
		Instructions: append([]string(nil), tpl.Instructions...),
	}
}
