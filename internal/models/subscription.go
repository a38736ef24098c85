package models

import "time"

// Subscription is a directed follow from one user to an author.
// The primary key is a composite of (UserID, AuthorID) to ensure uniqueness;
// self-subscription is rejected at the validation layer.
type Subscription struct {
	UserID    uint `gorm:"primaryKey"`
	AuthorID  uint `gorm:"primaryKey"`
	CreatedAt time.Time

	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Author User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
