package domain

type Category struct {
	ID          string
	Name        string
	Description string
}

// Categories is the fixed catalogue users pick article preferences from.
var Categories = []Category{
	{ID: "tech", Name: "Technology", Description: "Latest in gadgets, apps, and digital trends"},
	{ID: "health", Name: "Health & Wellness", Description: "Tips for healthy living and wellbeing"},
	{ID: "business", Name: "Business", Description: "Market updates, entrepreneurship, and career advice"},
	{ID: "science", Name: "Science", Description: "Discoveries, research, and innovation"},
	{ID: "entertainment", Name: "Entertainment", Description: "Movies, music, celebrities, and culture"},
	{ID: "travel", Name: "Travel", Description: "Destinations, travel tips, and experiences"},
	{ID: "food", Name: "Food & Cooking", Description: "Recipes, restaurant reviews, and culinary trends"},
	{ID: "sports", Name: "Sports", Description: "Games, athletes, and sporting events"},
	{ID: "politics", Name: "Politics", Description: "Policy updates, elections, and global affairs"},
}

// ValidCategoryID reports whether id names a known category.
func ValidCategoryID(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
