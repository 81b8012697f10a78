package store

import "recipeshare_backend/models"

// Samples returns the recipes a fresh server starts with.
func Samples() []models.Recipe {
	return []models.Recipe{
		{
			ID:         "1",
			Title:      "Homemade Margherita Pizza",
			Image:      "https://images.unsplash.com/photo-1604068549290-dea0e4a305ca?w=800&auto=format&fit=crop",
			CookTime:   "30 mins",
			Servings:   4,
			Difficulty: "Medium",
			Author:     "Chef Maria",
			Ingredients: []string{
				"2 cups all-purpose flour",
				"1 teaspoon salt",
				"3/4 cup warm water",
				"1 teaspoon active dry yeast",
				"1 tablespoon olive oil",
				"1 cup tomato sauce",
				"8 oz fresh mozzarella",
				"Fresh basil leaves",
				"2 tablespoons olive oil",
				"Salt and pepper to taste",
			},
			Instructions: []string{
				"Mix flour, salt, water, yeast, and olive oil to make the dough.",
				"Let the dough rise for 1 hour.",
				"Preheat oven to 475°F (245°C).",
				"Roll out the dough and place on a baking sheet.",
				"Spread tomato sauce over the dough.",
				"Add sliced mozzarella and drizzle with olive oil.",
				"Bake for 12-15 minutes until crust is golden.",
				"Top with fresh basil leaves before serving.",
			},
		},
		{
			ID:         "2",
			Title:      "Classic Beef Burger",
			Image:      "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=800&auto=format&fit=crop",
			CookTime:   "20 mins",
			Servings:   2,
			Difficulty: "Easy",
			Author:     "John Doe",
			Ingredients: []string{
				"1 lb ground beef (80/20)",
				"1 teaspoon salt",
				"1/2 teaspoon black pepper",
				"1 teaspoon Worcestershire sauce",
				"2 hamburger buns",
				"2 slices cheese (cheddar or American)",
				"Lettuce leaves",
				"Tomato slices",
				"Red onion slices",
				"Ketchup and mustard",
			},
			Instructions: []string{
				"Mix ground beef with salt, pepper, and Worcestershire sauce.",
				"Form into 2 patties, slightly larger than your buns.",
				"Press a small indent in the center of each patty with your thumb.",
				"Heat a skillet or grill to medium-high heat.",
				"Cook patties for 4-5 minutes per side for medium doneness.",
				"Add cheese during the last minute of cooking.",
				"Toast the buns lightly.",
				"Assemble burgers with lettuce, tomato, onion, and condiments.",
			},
		},
		{
			ID:         "3",
			Title:      "Fresh Summer Salad",
			Image:      "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=800&auto=format&fit=crop",
			CookTime:   "15 mins",
			Servings:   2,
			Difficulty: "Easy",
			Author:     "Sarah Smith",
			Ingredients: []string{
				"4 cups mixed greens",
				"1 cup cherry tomatoes, halved",
				"1 cucumber, sliced",
				"1/2 red onion, thinly sliced",
				"1/4 cup feta cheese, crumbled",
				"1/4 cup Kalamata olives",
				"2 tablespoons olive oil",
				"1 tablespoon lemon juice",
				"1 teaspoon honey",
				"Salt and pepper to taste",
			},
			Instructions: []string{
				"Wash and dry all produce.",
				"Combine mixed greens, tomatoes, cucumber, and red onion in a large bowl.",
				"In a small bowl, whisk together olive oil, lemon juice, honey, salt, and pepper.",
				"Pour dressing over the salad and toss gently.",
				"Top with feta cheese and olives.",
				"Serve immediately.",
			},
		},
	}
}
