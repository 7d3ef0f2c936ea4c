package plan

import "time"

// MealType 餐別
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// MealTypes 固定順序的餐別列表（snack 只在一天四餐以上時啟用）
var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}

// Ingredient 食材，name 是彙總鍵，unit 原樣保留不做換算
type Ingredient struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"` // 上游可能給數字或字串，統一存字串
	Unit     string `json:"unit"`
	Category string `json:"category"`
}

// MealTemplate 餐點模板（靜態目錄，進程生命週期內不變）
// 模板自身的營養比例只是參考資訊，最終巨量營養素一律由
// DistributionPlanner 的目標覆蓋
type MealTemplate struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	PrepTime     int          `json:"prep_time"` // 分鐘
	CookTime     int          `json:"cook_time"` // 分鐘
	Servings     int          `json:"servings"`
	BaseCalories int          `json:"base_calories"`
	ProteinRatio float64      `json:"protein_ratio"`
	CarbRatio    float64      `json:"carb_ratio"`
	FatRatio     float64      `json:"fat_ratio"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
}

// Meal 一餐，生成或換餐時整顆替換，永不逐欄位修改
type Meal struct {
	ID           string       `json:"id"`
	MealType     MealType     `json:"meal_type"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Calories     int          `json:"calories"`
	Protein      int          `json:"protein"`
	Carbs        int          `json:"carbs"`
	Fat          int          `json:"fat"`
	PrepTime     int          `json:"prep_time"`
	CookTime     int          `json:"cook_time"`
	Servings     int          `json:"servings"`
	Ingredients  []Ingredient `json:"ingredients"`  // AI 餐點尚未展開細節時可為空
	Instructions []string     `json:"instructions"` // 同上
}

// DailyTotals 單日營養總計
type DailyTotals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// DayPlan 一天的餐點與總計
// 不變量：DailyTotals 恆等於 Meals 各欄位的逐項和，
// 任何修改 Meals 的操作必須立即呼叫 RecomputeTotals
type DayPlan struct {
	DayNumber   int         `json:"day_number"` // 1..7
	Date        string      `json:"date"`       // YYYY-MM-DD，本地日曆欄位
	DayName     string      `json:"day_name"`
	Meals       []Meal      `json:"meals"`
	DailyTotals DailyTotals `json:"daily_totals"`
}

// RecomputeTotals 以當前 Meals 重算 DailyTotals
func (d *DayPlan) RecomputeTotals() {
	var t DailyTotals
	for _, m := range d.Meals {
		t.Calories += m.Calories
		t.Protein += m.Protein
		t.Carbs += m.Carbs
		t.Fat += m.Fat
	}
	d.DailyTotals = t
}

// MealOfType 取得指定餐別的餐點索引，找不到回傳 -1
func (d *DayPlan) MealOfType(mealType MealType) int {
	for i, m := range d.Meals {
		if m.MealType == mealType {
			return i
		}
	}
	return -1
}

// WeeklyPlan 恰好七天，從最近的週日起按時間順序排列
type WeeklyPlan struct {
	Days []DayPlan `json:"days"`
}

// GroceryItem 彙總後的採購項目，Checked 是唯一可獨立變更的欄位
type GroceryItem struct {
	Name    string `json:"name"`
	Amount  string `json:"amount"`
	Unit    string `json:"unit"`
	Checked bool   `json:"checked"`
}

// GroceryCategory 分類後的採購清單，items 在分類內以 name 唯一
type GroceryCategory struct {
	Category string        `json:"category"`
	Items    []GroceryItem `json:"items"`
}

// ShoppingItem 給外部採買協作方的扁平項目
type ShoppingItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"` // ceil(amount)
	Unit     string `json:"unit"`
}

// WeekSummary 衍生的唯讀週摘要，平均只計有餐點的天數
type WeekSummary struct {
	AvgDailyCalories int `json:"avg_daily_calories"`
	AvgDailyProtein  int `json:"avg_daily_protein"`
	AvgDailyCarbs    int `json:"avg_daily_carbs"`
	AvgDailyFat      int `json:"avg_daily_fat"`
	TotalMeals       int `json:"total_meals"`
}

// UserGoals 每日目標，生成／換餐開始時讀取一次，期間視為不可變
type UserGoals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// MealPlanPreferences 使用者偏好
type MealPlanPreferences struct {
	DietStyle     string   `json:"diet_style"`
	Allergies     []string `json:"allergies"`
	MealsPerDay   int      `json:"meals_per_day"`
	FavoriteFoods []string `json:"favorite_foods"`
	DislikedFoods []string `json:"disliked_foods"`
}

// CacheRecord 一個使用者的完整持久化狀態
// 有效期：now - LastGeneratedAt < 7 天
type CacheRecord struct {
	WeeklyPlan      *WeeklyPlan       `json:"weekly_plan"`
	GroceryList     []GroceryCategory `json:"grocery_list"`
	WeekSummary     *WeekSummary      `json:"week_summary"`
	LastGeneratedAt time.Time         `json:"last_generated_at"`
}

// dayNames 週日起算的星期名稱
var dayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// MostRecentSunday 回傳 now 所屬週的週日（本地時區的日曆日，時間歸零）
// 刻意用本地年月日組日期，避免經過 UTC 轉換造成跨日誤差
func MostRecentSunday(now time.Time) time.Time {
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// FormatLocalDate 以本地日曆欄位格式化日期
func FormatLocalDate(t time.Time) string {
	return t.Format("2006-01-02")
}
