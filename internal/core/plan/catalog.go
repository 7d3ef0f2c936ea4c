package plan

// 採購分類的固定輸出順序
const (
	CategoryProduce = "Produce"
	CategoryProtein = "Protein"
	CategoryDairy   = "Dairy"
	CategoryGrains  = "Grains"
	CategoryPantry  = "Pantry"
	CategorySpices  = "Spices"
	CategoryOther   = "Other"
)

// CategoryOrder 採購清單分類的固定輸出順序，空分類整個省略
var CategoryOrder = []string{
	CategoryProduce,
	CategoryProtein,
	CategoryDairy,
	CategoryGrains,
	CategoryPantry,
	CategorySpices,
	CategoryOther,
}

// Catalog 靜態餐點模板目錄
type Catalog struct {
	templates map[MealType][]MealTemplate
}

// NewCatalog 創建內建模板目錄
func NewCatalog() *Catalog {
	return &Catalog{templates: builtinTemplates()}
}

// TemplatesFor 取得指定餐別的全部模板
func (c *Catalog) TemplatesFor(mealType MealType) []MealTemplate {
	return c.templates[mealType]
}

// builtinTemplates 內建模板資料
func builtinTemplates() map[MealType][]MealTemplate {
	return map[MealType][]MealTemplate{
		MealTypeBreakfast: {
			{
				Name:         "Greek Yogurt Parfait",
				Description:  "Layered Greek yogurt with berries and granola",
				PrepTime:     10, CookTime: 0, Servings: 1, BaseCalories: 420,
				ProteinRatio: 0.30, CarbRatio: 0.50, FatRatio: 0.20,
				Ingredients: []Ingredient{
					{Name: "Greek yogurt", Amount: "1", Unit: "cup", Category: CategoryDairy},
					{Name: "Mixed berries", Amount: "0.5", Unit: "cup", Category: CategoryProduce},
					{Name: "Granola", Amount: "0.25", Unit: "cup", Category: CategoryGrains},
					{Name: "Honey", Amount: "1", Unit: "tbsp", Category: CategoryPantry},
				},
				Instructions: []string{
					"Spoon half the yogurt into a glass",
					"Layer berries and granola, repeat",
					"Drizzle honey on top",
				},
			},
			{
				Name:         "Veggie Scramble",
				Description:  "Eggs scrambled with spinach, peppers and feta",
				PrepTime:     10, CookTime: 10, Servings: 1, BaseCalories: 380,
				ProteinRatio: 0.35, CarbRatio: 0.25, FatRatio: 0.40,
				Ingredients: []Ingredient{
					{Name: "Eggs", Amount: "3", Unit: "large", Category: CategoryProtein},
					{Name: "Spinach", Amount: "1", Unit: "cup", Category: CategoryProduce},
					{Name: "Bell pepper", Amount: "0.5", Unit: "whole", Category: CategoryProduce},
					{Name: "Feta cheese", Amount: "2", Unit: "tbsp", Category: CategoryDairy},
					{Name: "Olive oil", Amount: "1", Unit: "tsp", Category: CategoryPantry},
				},
				Instructions: []string{
					"Saute peppers in olive oil",
					"Add spinach until wilted",
					"Pour in beaten eggs, scramble, finish with feta",
				},
			},
			{
				Name:         "Overnight Oats",
				Description:  "Rolled oats soaked in milk with chia and banana",
				PrepTime:     5, CookTime: 0, Servings: 1, BaseCalories: 450,
				ProteinRatio: 0.20, CarbRatio: 0.60, FatRatio: 0.20,
				Ingredients: []Ingredient{
					{Name: "Rolled oats", Amount: "0.5", Unit: "cup", Category: CategoryGrains},
					{Name: "Milk", Amount: "0.75", Unit: "cup", Category: CategoryDairy},
					{Name: "Chia seeds", Amount: "1", Unit: "tbsp", Category: CategoryPantry},
					{Name: "Banana", Amount: "1", Unit: "whole", Category: CategoryProduce},
				},
				Instructions: []string{
					"Combine oats, milk and chia in a jar",
					"Refrigerate overnight",
					"Top with sliced banana before serving",
				},
			},
			{
				Name:         "Avocado Toast with Egg",
				Description:  "Whole grain toast, smashed avocado and a fried egg",
				PrepTime:     5, CookTime: 5, Servings: 1, BaseCalories: 400,
				ProteinRatio: 0.20, CarbRatio: 0.40, FatRatio: 0.40,
				Ingredients: []Ingredient{
					{Name: "Whole grain bread", Amount: "2", Unit: "slice", Category: CategoryGrains},
					{Name: "Avocado", Amount: "1", Unit: "whole", Category: CategoryProduce},
					{Name: "Eggs", Amount: "1", Unit: "large", Category: CategoryProtein},
					{Name: "Red pepper flakes", Amount: "0.25", Unit: "tsp", Category: CategorySpices},
				},
				Instructions: []string{
					"Toast the bread",
					"Smash avocado onto toast",
					"Top with fried egg and pepper flakes",
				},
			},
			{
				Name:         "Protein Smoothie Bowl",
				Description:  "Blended protein smoothie topped with granola",
				PrepTime:     8, CookTime: 0, Servings: 1, BaseCalories: 430,
				ProteinRatio: 0.35, CarbRatio: 0.45, FatRatio: 0.20,
				Ingredients: []Ingredient{
					{Name: "Protein powder", Amount: "1", Unit: "scoop", Category: CategoryPantry},
					{Name: "Frozen berries", Amount: "1", Unit: "cup", Category: CategoryProduce},
					{Name: "Milk", Amount: "0.5", Unit: "cup", Category: CategoryDairy},
					{Name: "Granola", Amount: "0.25", Unit: "cup", Category: CategoryGrains},
				},
				Instructions: []string{
					"Blend protein, berries and milk until thick",
					"Pour into a bowl and top with granola",
				},
			},
		},
		MealTypeLunch: {
			{
				Name:         "Grilled Chicken Salad",
				Description:  "Grilled chicken over mixed greens with vinaigrette",
				PrepTime:     15, CookTime: 12, Servings: 1, BaseCalories: 520,
				ProteinRatio: 0.40, CarbRatio: 0.25, FatRatio: 0.35,
				Ingredients: []Ingredient{
					{Name: "Chicken breast", Amount: "6", Unit: "oz", Category: CategoryProtein},
					{Name: "Mixed greens", Amount: "2", Unit: "cup", Category: CategoryProduce},
					{Name: "Cherry tomatoes", Amount: "0.5", Unit: "cup", Category: CategoryProduce},
					{Name: "Olive oil", Amount: "1", Unit: "tbsp", Category: CategoryPantry},
					{Name: "Balsamic vinegar", Amount: "1", Unit: "tbsp", Category: CategoryPantry},
				},
				Instructions: []string{
					"Season and grill chicken until cooked through",
					"Toss greens and tomatoes with oil and vinegar",
					"Slice chicken over salad",
				},
			},
			{
				Name:         "Turkey Wrap",
				Description:  "Sliced turkey, hummus and vegetables in a tortilla",
				PrepTime:     10, CookTime: 0, Servings: 1, BaseCalories: 480,
				ProteinRatio: 0.30, CarbRatio: 0.45, FatRatio: 0.25,
				Ingredients: []Ingredient{
					{Name: "Whole wheat tortilla", Amount: "1", Unit: "large", Category: CategoryGrains},
					{Name: "Turkey breast", Amount: "4", Unit: "oz", Category: CategoryProtein},
					{Name: "Hummus", Amount: "2", Unit: "tbsp", Category: CategoryPantry},
					{Name: "Cucumber", Amount: "0.5", Unit: "whole", Category: CategoryProduce},
					{Name: "Spinach", Amount: "0.5", Unit: "cup", Category: CategoryProduce},
				},
				Instructions: []string{
					"Spread hummus over tortilla",
					"Layer turkey and vegetables",
					"Roll tightly and halve",
				},
			},
			{
				Name:         "Quinoa Power Bowl",
				Description:  "Quinoa with roasted chickpeas and tahini dressing",
				PrepTime:     15, CookTime: 20, Servings: 1, BaseCalories: 550,
				ProteinRatio: 0.20, CarbRatio: 0.55, FatRatio: 0.25,
				Ingredients: []Ingredient{
					{Name: "Quinoa", Amount: "0.75", Unit: "cup", Category: CategoryGrains},
					{Name: "Chickpeas", Amount: "0.5", Unit: "cup", Category: CategoryProtein},
					{Name: "Kale", Amount: "1", Unit: "cup", Category: CategoryProduce},
					{Name: "Tahini", Amount: "1", Unit: "tbsp", Category: CategoryPantry},
					{Name: "Lemon", Amount: "0.5", Unit: "whole", Category: CategoryProduce},
				},
				Instructions: []string{
					"Cook quinoa, roast chickpeas until crisp",
					"Massage kale with lemon",
					"Assemble bowl and drizzle tahini",
				},
			},
			{
				Name:         "Tuna Sandwich",
				Description:  "Tuna salad on whole grain bread",
				PrepTime:     10, CookTime: 0, Servings: 1, BaseCalories: 450,
				ProteinRatio: 0.35, CarbRatio: 0.40, FatRatio: 0.25,
				Ingredients: []Ingredient{
					{Name: "Canned tuna", Amount: "1", Unit: "can", Category: CategoryProtein},
					{Name: "Whole grain bread", Amount: "2", Unit: "slice", Category: CategoryGrains},
					{Name: "Greek yogurt", Amount: "2", Unit: "tbsp", Category: CategoryDairy},
					{Name: "Celery", Amount: "1", Unit: "stalk", Category: CategoryProduce},
				},
				Instructions: []string{
					"Mix tuna with yogurt and diced celery",
					"Assemble sandwich",
				},
			},
			{
				Name:         "Chicken Burrito Bowl",
				Description:  "Rice bowl with chicken, beans and salsa",
				PrepTime:     15, CookTime: 15, Servings: 1, BaseCalories: 600,
				ProteinRatio: 0.30, CarbRatio: 0.50, FatRatio: 0.20,
				Ingredients: []Ingredient{
					{Name: "Brown rice", Amount: "0.75", Unit: "cup", Category: CategoryGrains},
					{Name: "Chicken breast", Amount: "5", Unit: "oz", Category: CategoryProtein},
					{Name: "Black beans", Amount: "0.5", Unit: "cup", Category: CategoryProtein},
					{Name: "Salsa", Amount: "0.25", Unit: "cup", Category: CategoryPantry},
					{Name: "Avocado", Amount: "0.5", Unit: "whole", Category: CategoryProduce},
				},
				Instructions: []string{
					"Cook rice and season chicken with cumin",
					"Grill chicken and slice",
					"Layer rice, beans, chicken, salsa and avocado",
				},
			},
		},
		MealTypeDinner: {
			{
				Name:         "Baked Salmon with Vegetables",
				Description:  "Oven-baked salmon with roasted broccoli and sweet potato",
				PrepTime:     15, CookTime: 25, Servings: 1, BaseCalories: 650,
				ProteinRatio: 0.35, CarbRatio: 0.30, FatRatio: 0.35,
				Ingredients: []Ingredient{
					{Name: "Salmon fillet", Amount: "6", Unit: "oz", Category: CategoryProtein},
					{Name: "Broccoli", Amount: "1", Unit: "cup", Category: CategoryProduce},
					{Name: "Sweet potato", Amount: "1", Unit: "whole", Category: CategoryProduce},
					{Name: "Olive oil", Amount: "1", Unit: "tbsp", Category: CategoryPantry},
					{Name: "Garlic powder", Amount: "0.5", Unit: "tsp", Category: CategorySpices},
				},
				Instructions: []string{
					"Roast sweet potato wedges at 200C for 15 minutes",
					"Add salmon and broccoli, bake 12 more minutes",
					"Season and serve",
				},
			},
			{
				Name:         "Beef Stir Fry",
				Description:  "Lean beef strips with vegetables over rice",
				PrepTime:     20, CookTime: 10, Servings: 1, BaseCalories: 620,
				ProteinRatio: 0.35, CarbRatio: 0.40, FatRatio: 0.25,
				Ingredients: []Ingredient{
					{Name: "Lean beef", Amount: "5", Unit: "oz", Category: CategoryProtein},
					{Name: "Bell pepper", Amount: "1", Unit: "whole", Category: CategoryProduce},
					{Name: "Snap peas", Amount: "1", Unit: "cup", Category: CategoryProduce},
					{Name: "Brown rice", Amount: "0.75", Unit: "cup", Category: CategoryGrains},
					{Name: "Soy sauce", Amount: "2", Unit: "tbsp", Category: CategoryPantry},
					{Name: "Ginger", Amount: "1", Unit: "tsp", Category: CategorySpices},
				},
				Instructions: []string{
					"Sear beef in a hot wok",
					"Add vegetables and stir fry 4 minutes",
					"Finish with soy and ginger, serve over rice",
				},
			},
			{
				Name:         "Chicken Pasta Primavera",
				Description:  "Whole wheat pasta with chicken and seasonal vegetables",
				PrepTime:     15, CookTime: 20, Servings: 1, BaseCalories: 680,
				ProteinRatio: 0.30, CarbRatio: 0.50, FatRatio: 0.20,
				Ingredients: []Ingredient{
					{Name: "Whole wheat pasta", Amount: "3", Unit: "oz", Category: CategoryGrains},
					{Name: "Chicken breast", Amount: "5", Unit: "oz", Category: CategoryProtein},
					{Name: "Zucchini", Amount: "1", Unit: "whole", Category: CategoryProduce},
					{Name: "Parmesan", Amount: "2", Unit: "tbsp", Category: CategoryDairy},
					{Name: "Olive oil", Amount: "1", Unit: "tbsp", Category: CategoryPantry},
				},
				Instructions: []string{
					"Boil pasta until al dente",
					"Saute chicken and zucchini",
					"Toss together with oil and parmesan",
				},
			},
			{
				Name:         "Shrimp Tacos",
				Description:  "Spiced shrimp in corn tortillas with slaw",
				PrepTime:     15, CookTime: 8, Servings: 1, BaseCalories: 560,
				ProteinRatio: 0.30, CarbRatio: 0.45, FatRatio: 0.25,
				Ingredients: []Ingredient{
					{Name: "Shrimp", Amount: "6", Unit: "oz", Category: CategoryProtein},
					{Name: "Corn tortilla", Amount: "3", Unit: "whole", Category: CategoryGrains},
					{Name: "Cabbage slaw", Amount: "1", Unit: "cup", Category: CategoryProduce},
					{Name: "Lime", Amount: "1", Unit: "whole", Category: CategoryProduce},
					{Name: "Chili powder", Amount: "1", Unit: "tsp", Category: CategorySpices},
				},
				Instructions: []string{
					"Toss shrimp with chili powder and sear",
					"Warm tortillas",
					"Fill with slaw and shrimp, squeeze lime",
				},
			},
			{
				Name:         "Tofu Curry",
				Description:  "Coconut curry with tofu and vegetables over rice",
				PrepTime:     15, CookTime: 20, Servings: 1, BaseCalories: 600,
				ProteinRatio: 0.20, CarbRatio: 0.50, FatRatio: 0.30,
				Ingredients: []Ingredient{
					{Name: "Firm tofu", Amount: "6", Unit: "oz", Category: CategoryProtein},
					{Name: "Coconut milk", Amount: "0.5", Unit: "cup", Category: CategoryPantry},
					{Name: "Curry paste", Amount: "1", Unit: "tbsp", Category: CategorySpices},
					{Name: "Cauliflower", Amount: "1", Unit: "cup", Category: CategoryProduce},
					{Name: "Jasmine rice", Amount: "0.75", Unit: "cup", Category: CategoryGrains},
				},
				Instructions: []string{
					"Fry curry paste in a little oil",
					"Add coconut milk, tofu and cauliflower, simmer 15 minutes",
					"Serve over rice",
				},
			},
		},
		MealTypeSnack: {
			{
				Name:         "Apple with Peanut Butter",
				Description:  "Sliced apple with natural peanut butter",
				PrepTime:     5, CookTime: 0, Servings: 1, BaseCalories: 250,
				ProteinRatio: 0.15, CarbRatio: 0.50, FatRatio: 0.35,
				Ingredients: []Ingredient{
					{Name: "Apple", Amount: "1", Unit: "whole", Category: CategoryProduce},
					{Name: "Peanut butter", Amount: "2", Unit: "tbsp", Category: CategoryPantry},
				},
				Instructions: []string{"Slice apple and serve with peanut butter"},
			},
			{
				Name:         "Cottage Cheese Bowl",
				Description:  "Cottage cheese with pineapple",
				PrepTime:     5, CookTime: 0, Servings: 1, BaseCalories: 220,
				ProteinRatio: 0.45, CarbRatio: 0.40, FatRatio: 0.15,
				Ingredients: []Ingredient{
					{Name: "Cottage cheese", Amount: "0.75", Unit: "cup", Category: CategoryDairy},
					{Name: "Pineapple", Amount: "0.5", Unit: "cup", Category: CategoryProduce},
				},
				Instructions: []string{"Combine in a bowl"},
			},
			{
				Name:         "Trail Mix",
				Description:  "Nuts, seeds and dried fruit",
				PrepTime:     2, CookTime: 0, Servings: 1, BaseCalories: 280,
				ProteinRatio: 0.15, CarbRatio: 0.35, FatRatio: 0.50,
				Ingredients: []Ingredient{
					{Name: "Almonds", Amount: "0.25", Unit: "cup", Category: CategoryPantry},
					{Name: "Dried cranberries", Amount: "2", Unit: "tbsp", Category: CategoryPantry},
					{Name: "Pumpkin seeds", Amount: "1", Unit: "tbsp", Category: CategoryPantry},
				},
				Instructions: []string{"Mix and portion"},
			},
			{
				Name:         "Protein Shake",
				Description:  "Protein powder blended with milk",
				PrepTime:     3, CookTime: 0, Servings: 1, BaseCalories: 240,
				ProteinRatio: 0.55, CarbRatio: 0.30, FatRatio: 0.15,
				Ingredients: []Ingredient{
					{Name: "Protein powder", Amount: "1", Unit: "scoop", Category: CategoryPantry},
					{Name: "Milk", Amount: "1", Unit: "cup", Category: CategoryDairy},
				},
				Instructions: []string{"Blend until smooth"},
			},
		},
	}
}
