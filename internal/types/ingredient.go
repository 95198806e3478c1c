package types

import "github.com/google/uuid"

type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"size:100;not null;index" json:"name"`
	MeasurementUnit string    `gorm:"size:100;not null;column:measurement_unit" json:"measurement_unit"`
}

func (Ingredient) TableName() string {
	return "ingredient"
}
