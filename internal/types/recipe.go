package types

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"author_id"`
	Author      *User            `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Name        string           `gorm:"size:200;not null" json:"name"`
	Text        string           `gorm:"size:2000;not null" json:"text"`
	CookingTime int              `gorm:"not null" json:"cooking_time"`
	ImageKey    string           `gorm:"column:image_key" json:"-"`
	ImageURL    string           `gorm:"column:image_url" json:"image"`
	Tags        []Tag            `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Lines       []IngredientLine `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time        `gorm:"not null;index:idx_recipe_recency,sort:desc" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null" json:"updated_at"`
}

func (Recipe) TableName() string {
	return "recipe"
}
