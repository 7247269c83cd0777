package models

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Enum membership failures surfaced by the BeforeSave hooks.
var (
	ErrInvalidCategory = errors.New("invalid handicraft category")
	ErrInvalidStatus   = errors.New("invalid post status")
)

// Post is a listing authored by exactly one user. Card numbers are
// never stored; PaymentToken holds an opaque reference issued by the
// payment processor.
type Post struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"index;not null" json:"user_id"`
	Title        string       `gorm:"size:50;not null" json:"title"`
	Content      string       `gorm:"type:text;not null" json:"content"`
	ImageURL     string       `gorm:"size:100" json:"image_url,omitempty"`
	Categories   CategoryList `json:"categories,omitempty"`
	PaymentToken string       `gorm:"size:64" json:"-"`
	Status       *PostStatus  `json:"status,omitempty"`

	User      User       `json:"author"`
	Reviews   []Review   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Favorites []Favorite `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// BeforeSave rejects values outside the closed category and status sets.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	for _, c := range p.Categories {
		if !c.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidCategory, c)
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *p.Status)
	}
	return nil
}
