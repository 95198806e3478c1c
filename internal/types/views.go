package types

import "github.com/google/uuid"

// Read-side projections. Derived flags (is_subscribed, is_favorited,
// is_in_shopping_cart) are resolved per request against the caller's
// identity and are never stored.

type UserView struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

type IngredientLineView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type RecipeView struct {
	ID                uuid.UUID            `json:"id"`
	Tags              []Tag                `json:"tags"`
	Author            UserView             `json:"author"`
	Ingredients       []IngredientLineView `json:"ingredients"`
	IsFavorited       bool                 `json:"is_favorited"`
	IsInShoppingCart  bool                 `json:"is_in_shopping_cart"`
	Name              string               `json:"name"`
	Image             string               `json:"image"`
	Text              string               `json:"text"`
	CookingTime       int                  `json:"cooking_time"`
}

// ShortRecipeView is the compact projection returned by favorite/cart adds
// and embedded in subscription listings.
type ShortRecipeView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// AuthorView is a user profile enriched with their recipes, as returned by
// the subscription endpoints.
type AuthorView struct {
	UserView
	Recipes      []ShortRecipeView `json:"recipes"`
	RecipesCount int64             `json:"recipes_count"`
}

func ShortRecipe(r *Recipe) ShortRecipeView {
	return ShortRecipeView{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingTime,
	}
}
