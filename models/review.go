package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrRatingOutOfRange is returned when a review rating falls outside 1-5.
var ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

// Review is feedback on one post by one user.
type Review struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	PostID  uint   `gorm:"index;not null" json:"post_id"`
	Message string `gorm:"type:text" json:"message,omitempty"`
	Rating  int    `gorm:"not null" json:"rating"`

	User User `json:"-"`
	Post Post `json:"-"`
}

// BeforeSave enforces the 1-5 rating range.
func (r *Review) BeforeSave(tx *gorm.DB) error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrRatingOutOfRange
	}
	return nil
}
