package coach

import (
	"fmt"

	"lg/nutrichat-api/nutrition"
)

func fallbackAdvice(p nutrition.Profile, goal string) Advice {
	return Advice{
		MealPlan: fmt.Sprintf("Focus on eating exactly %d calories daily for %s. Adjust portions based on your weight of %.1f lbs.",
			p.TargetCalories, goal, p.WeightLbs),
		NutritionTips: fmt.Sprintf("Get %dg of protein and stay hydrated with %doz of water.", p.ProteinGrams, p.WaterOz),
		LifestyleTips: fmt.Sprintf("Stay active at your %s level and get enough sleep.", p.ActivityLevel),
		Fallback:      true,
	}
}

func fallbackMealPlan(p nutrition.Profile) string {
	breakfast := mealShare(p.TargetCalories, 0.25)
	lunch := mealShare(p.TargetCalories, 0.30)
	dinner := mealShare(p.TargetCalories, 0.30)
	snacks := mealShare(p.TargetCalories, 0.15)

	return fmt.Sprintf(`Here's a personalized meal plan for your stats:

Breakfast (%[1]d calories):
- 2 eggs with 1 slice whole grain toast
- Greek yogurt with berries
- Adjust portions to reach %[1]d calories

Lunch (%[2]d calories):
- Grilled protein (chicken/fish) with vegetables
- 1 serving of whole grains
- Adjust portions to reach %[2]d calories

Dinner (%[3]d calories):
- Lean protein with vegetables
- 1 serving of whole grains
- Adjust portions to reach %[3]d calories

Snacks (%[4]d calories):
- Protein-rich snacks
- Fruits and nuts
- Adjust portions to reach %[4]d calories

Total: %[5]d calories
Protein: %[6]dg
Carbs: %[7]dg
Fat: %[8]dg`, breakfast, lunch, dinner, snacks,
		p.TargetCalories, p.ProteinGrams, p.CarbsGrams, p.FatGrams)
}

func fallbackNutritionTips(p nutrition.Profile) string {
	return fmt.Sprintf(`• Eat exactly %d calories daily
• Get %dg of protein
• Include %dg of carbs
• Add %dg of healthy fats
• Drink %doz of water
• Eat every 3-4 hours
• Include protein in every meal
• Adjust portions based on your activity level: %s`,
		p.TargetCalories, p.ProteinGrams, p.CarbsGrams, p.FatGrams, p.WaterOz, p.ActivityLevel)
}

func fallbackLifestyleTips(p nutrition.Profile) string {
	return fmt.Sprintf(`• Get 7-8 hours of sleep
• Stay consistent with your %s activity level
• Manage stress
• Stay hydrated with %doz of water daily
• Track your progress
• Adjust portions if needed based on your weight changes`, p.ActivityLevel, p.WaterOz)
}
