package models

// Ingredient is a catalog entry; recipes reference it through
// IngredientInRecipe with an amount.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"size:150;unique;not null"`
	MeasurementUnit string `gorm:"size:150;not null"`
}
