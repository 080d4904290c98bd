// Package meals содержит статический каталог примеров питания по целям.
package meals

// Goal определяет цель питания, для которой подобран план.
type Goal string

const (
	GoalCutting     Goal = "cutting"
	GoalMaintenance Goal = "maintenance"
	GoalBulking     Goal = "bulking"
)

// Meal описывает одно блюдо с макронутриентами.
type Meal struct {
	Name        string `json:"name"`
	Calories    int    `json:"calories"`
	Protein     int    `json:"protein"`
	Carbs       int    `json:"carbs"`
	Fats        int    `json:"fats"`
	Description string `json:"description"`
}

// Plan описывает дневной набор блюд для одной цели.
type Plan struct {
	Goal      Goal   `json:"goal"`
	Breakfast []Meal `json:"breakfast"`
	Lunch     []Meal `json:"lunch"`
	Dinner    []Meal `json:"dinner"`
	Snacks    []Meal `json:"snacks"`
}

var plans = map[Goal]Plan{
	GoalCutting: {
		Goal: GoalCutting,
		Breakfast: []Meal{
			{Name: "Greek Yogurt Bowl", Calories: 250, Protein: 20, Carbs: 30, Fats: 5, Description: "Greek yogurt with berries, almonds, and honey"},
			{Name: "Egg White Omelette", Calories: 200, Protein: 25, Carbs: 10, Fats: 6, Description: "Egg whites with spinach, tomatoes, and mushrooms"},
			{Name: "Protein Oatmeal", Calories: 280, Protein: 18, Carbs: 35, Fats: 8, Description: "Oats with protein powder, banana, and cinnamon"},
		},
		Lunch: []Meal{
			{Name: "Grilled Chicken Salad", Calories: 350, Protein: 40, Carbs: 20, Fats: 12, Description: "Mixed greens, grilled chicken, vegetables, light dressing"},
			{Name: "Tuna Wrap", Calories: 320, Protein: 35, Carbs: 30, Fats: 8, Description: "Whole wheat wrap with tuna, lettuce, cucumber"},
			{Name: "Turkey & Veggie Bowl", Calories: 340, Protein: 38, Carbs: 25, Fats: 10, Description: "Lean turkey with quinoa and roasted vegetables"},
		},
		Dinner: []Meal{
			{Name: "Baked Salmon", Calories: 400, Protein: 45, Carbs: 20, Fats: 15, Description: "Salmon fillet with sweet potato and broccoli"},
			{Name: "Chicken Stir-fry", Calories: 380, Protein: 42, Carbs: 30, Fats: 12, Description: "Chicken breast with mixed vegetables and brown rice"},
			{Name: "Lean Beef & Veggies", Calories: 390, Protein: 40, Carbs: 25, Fats: 14, Description: "Lean beef with cauliflower rice and green beans"},
		},
		Snacks: []Meal{
			{Name: "Protein Shake", Calories: 150, Protein: 25, Carbs: 10, Fats: 2, Description: "Whey protein with water or almond milk"},
			{Name: "Cottage Cheese", Calories: 120, Protein: 18, Carbs: 8, Fats: 3, Description: "Low-fat cottage cheese with cucumber"},
			{Name: "Hard-boiled Eggs", Calories: 140, Protein: 12, Carbs: 2, Fats: 10, Description: "2 hard-boiled eggs"},
		},
	},
	GoalMaintenance: {
		Goal: GoalMaintenance,
		Breakfast: []Meal{
			{Name: "Whole Grain Toast & Eggs", Calories: 350, Protein: 22, Carbs: 40, Fats: 12, Description: "Whole grain bread with scrambled eggs and avocado"},
			{Name: "Protein Pancakes", Calories: 380, Protein: 25, Carbs: 45, Fats: 10, Description: "Pancakes with protein powder, topped with berries"},
			{Name: "Smoothie Bowl", Calories: 360, Protein: 20, Carbs: 50, Fats: 10, Description: "Protein smoothie with granola and fruit"},
		},
		Lunch: []Meal{
			{Name: "Chicken Burrito Bowl", Calories: 500, Protein: 40, Carbs: 50, Fats: 18, Description: "Rice, chicken, beans, salsa, and guacamole"},
			{Name: "Pasta with Chicken", Calories: 520, Protein: 38, Carbs: 55, Fats: 16, Description: "Whole wheat pasta with grilled chicken and marinara"},
			{Name: "Salmon Poke Bowl", Calories: 480, Protein: 35, Carbs: 48, Fats: 18, Description: "Salmon with rice, edamame, and vegetables"},
		},
		Dinner: []Meal{
			{Name: "Steak & Potatoes", Calories: 550, Protein: 45, Carbs: 50, Fats: 20, Description: "Lean steak with roasted potatoes and asparagus"},
			{Name: "Chicken Fajitas", Calories: 520, Protein: 42, Carbs: 48, Fats: 18, Description: "Chicken fajitas with peppers, onions, and tortillas"},
			{Name: "Fish Tacos", Calories: 500, Protein: 38, Carbs: 52, Fats: 16, Description: "Grilled fish tacos with cabbage slaw and avocado"},
		},
		Snacks: []Meal{
			{Name: "Peanut Butter & Apple", Calories: 200, Protein: 8, Carbs: 25, Fats: 10, Description: "Apple slices with natural peanut butter"},
			{Name: "Trail Mix", Calories: 180, Protein: 6, Carbs: 20, Fats: 10, Description: "Mixed nuts and dried fruit"},
			{Name: "Greek Yogurt", Calories: 150, Protein: 15, Carbs: 18, Fats: 4, Description: "Greek yogurt with honey"},
		},
	},
	GoalBulking: {
		Goal: GoalBulking,
		Breakfast: []Meal{
			{Name: "Protein Breakfast Burrito", Calories: 550, Protein: 35, Carbs: 60, Fats: 18, Description: "Eggs, cheese, potatoes, and sausage in tortilla"},
			{Name: "Loaded Oatmeal", Calories: 500, Protein: 28, Carbs: 70, Fats: 15, Description: "Oats with protein powder, nuts, banana, and honey"},
			{Name: "Steak & Eggs", Calories: 580, Protein: 45, Carbs: 30, Fats: 28, Description: "Lean steak with 3 whole eggs and toast"},
		},
		Lunch: []Meal{
			{Name: "Double Chicken Bowl", Calories: 700, Protein: 60, Carbs: 75, Fats: 20, Description: "Extra chicken with rice, beans, and avocado"},
			{Name: "Loaded Pasta", Calories: 720, Protein: 50, Carbs: 85, Fats: 22, Description: "Pasta with meat sauce, cheese, and garlic bread"},
			{Name: "Beef & Rice Bowl", Calories: 680, Protein: 55, Carbs: 70, Fats: 22, Description: "Ground beef with rice, vegetables, and cheese"},
		},
		Dinner: []Meal{
			{Name: "Ribeye & Sweet Potato", Calories: 750, Protein: 55, Carbs: 65, Fats: 30, Description: "Ribeye steak with large sweet potato and butter"},
			{Name: "Chicken Parmesan", Calories: 720, Protein: 58, Carbs: 70, Fats: 25, Description: "Breaded chicken with pasta and cheese"},
			{Name: "Salmon & Quinoa", Calories: 680, Protein: 50, Carbs: 60, Fats: 28, Description: "Fatty salmon with quinoa and roasted vegetables"},
		},
		Snacks: []Meal{
			{Name: "Mass Gainer Shake", Calories: 400, Protein: 30, Carbs: 50, Fats: 10, Description: "Protein powder with milk, banana, and peanut butter"},
			{Name: "Bagel with Cream Cheese", Calories: 350, Protein: 12, Carbs: 50, Fats: 12, Description: "Whole grain bagel with cream cheese"},
			{Name: "Protein Bars", Calories: 300, Protein: 20, Carbs: 35, Fats: 10, Description: "High-protein energy bar"},
		},
	},
}

// ForGoal возвращает план питания для цели.
func ForGoal(g Goal) (Plan, bool) {
	p, ok := plans[g]
	return p, ok
}
