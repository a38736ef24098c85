package models

import "time"

// Recipe is a published dish. Image holds the stored media reference, not
// the payload itself. PubDate is set once at creation; listings order by it
// descending.
type Recipe struct {
	ID          uint      `gorm:"primaryKey"`
	AuthorID    uint      `gorm:"not null;index"`
	Name        string    `gorm:"size:150;not null"`
	Image       string    `gorm:"size:512"`
	Text        string    `gorm:"not null"`
	CookingTime int       `gorm:"not null"`
	PubDate     time.Time `gorm:"autoCreateTime;index"`

	Author      User                 `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Tags        []*Tag               `gorm:"many2many:recipe_tags;"`
	Ingredients []IngredientInRecipe `gorm:"foreignKey:RecipeID"`
}

// IngredientInRecipe is the amount-bearing join between a recipe and an
// ingredient. The composite primary key makes a duplicate ingredient within
// one recipe impossible at the storage level.
type IngredientInRecipe struct {
	RecipeID     uint `gorm:"primaryKey"`
	IngredientID uint `gorm:"primaryKey"`
	Amount       int  `gorm:"not null"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Recipe     Recipe     `gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
