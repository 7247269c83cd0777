// Package models declares the persisted entities of the marketplace:
// users post handmade items, other users review and favorite them.
package models

// All lists every persisted model in migration order (parents first so
// foreign keys resolve on a fresh schema).
func All() []interface{} {
	return []interface{}{&User{}, &Post{}, &Review{}, &Favorite{}}
}
