package models

// Favorite marks a post as bookmarked by a user. The composite primary
// key is the natural key: at most one favorite per (user, post) pair.
type Favorite struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PostID uint `gorm:"primaryKey;autoIncrement:false" json:"post_id"`

	User User `json:"-"`
	Post Post `json:"-"`
}
