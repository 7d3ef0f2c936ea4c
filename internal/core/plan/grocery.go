package plan

import (
	"math"
	"strconv"
	"strings"
)

// groceryKey 彙總鍵：分類 + 原樣的食材名稱（區分大小寫，不做同義詞歸併）
type groceryKey struct {
	category string
	name     string
}

type groceryAccum struct {
	amount float64
	unit   string // 第一次出現的單位，後續不一致也不換算
	order  int    // 分類內首次出現的順序，讓輸出穩定
}

// AggregateGroceries 走訪整週計畫，產出分類、去重、數量加總的採購清單
// 注意：同名食材即使單位不同也直接把數值相加（1 cup + 2 tbsp = 3），
// 這是既有行為，上層有意保留，不要在這裡「修正」
func AggregateGroceries(weeklyPlan *WeeklyPlan) []GroceryCategory {
	if weeklyPlan == nil {
		return []GroceryCategory{}
	}

	accum := make(map[groceryKey]*groceryAccum)
	seq := 0
	for _, day := range weeklyPlan.Days {
		for _, meal := range day.Meals {
			for _, ing := range meal.Ingredients {
				if ing.Name == "" {
					continue
				}
				category := ing.Category
				if category == "" {
					category = CategoryOther
				}
				key := groceryKey{category: category, name: ing.Name}
				entry, exists := accum[key]
				if !exists {
					entry = &groceryAccum{unit: ing.Unit, order: seq}
					seq++
					accum[key] = entry
				}
				entry.amount += ParseAmount(ing.Amount)
			}
		}
	}

	// 按固定分類順序輸出，空分類整個省略
	result := make([]GroceryCategory, 0, len(CategoryOrder))
	for _, category := range CategoryOrder {
		items := make([]GroceryItem, 0)
		for key, entry := range accum {
			if key.category != category {
				continue
			}
			items = append(items, GroceryItem{
				Name:    key.name,
				Amount:  FormatAmount(entry.amount),
				Unit:    entry.unit,
				Checked: false,
			})
		}
		if len(items) == 0 {
			continue
		}
		sortItemsByFirstSeen(items, accum, category)
		result = append(result, GroceryCategory{Category: category, Items: items})
	}
	return result
}

// sortItemsByFirstSeen 以首次出現順序排序，彙總結果才是確定性的
func sortItemsByFirstSeen(items []GroceryItem, accum map[groceryKey]*groceryAccum, category string) {
	orderOf := func(name string) int {
		return accum[groceryKey{category: category, name: name}].order
	}
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && orderOf(items[j].Name) < orderOf(items[j-1].Name); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

// ParseAmount 把字串數量轉成 float，非數字字串（"a pinch" 之類）當 1
func ParseAmount(amount string) float64 {
	s := strings.TrimSpace(amount)
	if s == "" {
		return 1
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1
	}
	return f
}

// FormatAmount 最多一位小數，尾端 .0 去掉（1.75 → "1.8"、2.0 → "2"）
func FormatAmount(amount float64) string {
	rounded := math.Round(amount*10) / 10
	if rounded == math.Trunc(rounded) {
		return strconv.FormatFloat(rounded, 'f', 0, 64)
	}
	return strconv.FormatFloat(rounded, 'f', 1, 64)
}

// ShoppingExport 給採買協作方的扁平清單：只取未勾選項目，
// 數量無條件進位成整數
func ShoppingExport(groceryList []GroceryCategory) []ShoppingItem {
	out := make([]ShoppingItem, 0)
	for _, category := range groceryList {
		for _, item := range category.Items {
			if item.Checked {
				continue
			}
			out = append(out, ShoppingItem{
				Name:     item.Name,
				Quantity: int(math.Ceil(ParseAmount(item.Amount))),
				Unit:     item.Unit,
			})
		}
	}
	return out
}

// SetChecked 切換採購項目的勾選狀態，唯一可獨立變更的欄位
// 回傳是否找到目標項目
func SetChecked(groceryList []GroceryCategory, category, name string, checked bool) bool {
	for i := range groceryList {
		if groceryList[i].Category != category {
			continue
		}
		for j := range groceryList[i].Items {
			if groceryList[i].Items[j].Name == name {
				groceryList[i].Items[j].Checked = checked
				return true
			}
		}
	}
	return false
}
