package types

import "github.com/google/uuid"

// IngredientAmountInput is one "ingredient id + amount" entry of a recipe
// write payload.
type IngredientAmountInput struct {
	ID     uuid.UUID `json:"id"`
	Amount int       `json:"amount"`
}

// RecipeInput is the write payload for recipe create and update. Scalar
// fields are pointers so update can distinguish "absent" from "zero";
// tags and ingredients are required on every write, including updates.
type RecipeInput struct {
	Name        *string                 `json:"name"`
	Text        *string                 `json:"text"`
	CookingTime *int                    `json:"cooking_time"`
	Image       *string                 `json:"image"`
	Tags        []uuid.UUID             `json:"tags"`
	Ingredients []IngredientAmountInput `json:"ingredients"`
}

// UserUpdateInput is the PATCH /users/me payload.
type UserUpdateInput struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}
