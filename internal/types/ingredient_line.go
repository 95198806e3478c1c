package types

import "github.com/google/uuid"

// IngredientLine is one "ingredient X, amount N" row of a recipe. The
// composite unique index keeps one line per ingredient within a recipe;
// lines are replaced wholesale on recipe update, never diffed.
type IngredientLine struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_line_recipe_ingredient" json:"recipe_id"`
	IngredientID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_line_recipe_ingredient" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
	Amount       int         `gorm:"not null" json:"amount"`
}

func (IngredientLine) TableName() string {
	return "ingredient_line"
}
