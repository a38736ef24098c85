package models

// Tag labels a recipe (e.g. "breakfast", "dinner"). Color is a hex string
// like "#49B64E" used by clients when rendering the tag.
type Tag struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:150;unique;not null"`
	Color string `gorm:"size:7;not null"`
	Slug  string `gorm:"size:150;unique;not null"`
}
