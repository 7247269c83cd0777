package models

import "time"

// User is a marketplace account identified by a federated-login subject
// id. Deleting a user cascades to their posts, reviews and favorites at
// the database level.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GoogleID    string    `gorm:"size:255;uniqueIndex;not null" json:"google_id"`
	PhoneNumber string    `gorm:"size:32;uniqueIndex;not null" json:"phone_number"`
	Email       string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name        string    `gorm:"size:255" json:"name,omitempty"`
	AvatarURL   string    `gorm:"size:512" json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// cascade lives on the owning side: gorm builds each child's foreign
	// key from these has-many fields
	Posts     []Post     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Reviews   []Review   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Favorites []Favorite `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
