package models

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// HandicraftCategory is a closed set of handicraft disciplines a post
// can be tagged with. Adding a member is a schema-compatible change,
// removing one is not.
type HandicraftCategory string

const (
	CategoryKnitting     HandicraftCategory = "knitting"
	CategoryCrochet      HandicraftCategory = "crochet"
	CategoryJewelry      HandicraftCategory = "jewelry"
	CategorySewing       HandicraftCategory = "sewing"
	CategoryEmbroidery   HandicraftCategory = "embroidery"
	CategoryPainting     HandicraftCategory = "painting"
	CategoryWoodwork     HandicraftCategory = "woodwork"
	CategoryLeatherCraft HandicraftCategory = "leather_craft"
	CategoryCeramics     HandicraftCategory = "ceramics"
	CategoryCandleMaking HandicraftCategory = "candle_making"
	CategorySoapMaking   HandicraftCategory = "soap_making"
	CategoryPaperCraft   HandicraftCategory = "paper_craft"
	CategoryGlassArt     HandicraftCategory = "glass_art"
	CategoryMetalCraft   HandicraftCategory = "metal_craft"
	CategoryResinArt     HandicraftCategory = "resin_art"
	CategoryBasketry     HandicraftCategory = "basketry"
	CategoryDollMaking   HandicraftCategory = "doll_making"
	CategoryMacrame      HandicraftCategory = "macrame"
	CategoryOther        HandicraftCategory = "other"
)

// Categories returns all category members in declaration order.
func Categories() []HandicraftCategory {
	return []HandicraftCategory{
		CategoryKnitting, CategoryCrochet, CategoryJewelry, CategorySewing,
		CategoryEmbroidery, CategoryPainting, CategoryWoodwork, CategoryLeatherCraft,
		CategoryCeramics, CategoryCandleMaking, CategorySoapMaking, CategoryPaperCraft,
		CategoryGlassArt, CategoryMetalCraft, CategoryResinArt, CategoryBasketry,
		CategoryDollMaking, CategoryMacrame, CategoryOther,
	}
}

// Valid reports whether c is a member of the closed set.
func (c HandicraftCategory) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// PostStatus is the sale state of a post.
type PostStatus string

const (
	StatusSold    PostStatus = "sold"
	StatusInStock PostStatus = "in_stock"
)

// Valid reports whether s is a member of the closed set.
func (s PostStatus) Valid() bool {
	return s == StatusSold || s == StatusInStock
}

// GormDBDataType maps the status onto the server-side enum type on
// postgres and plain text elsewhere (the sqlite test driver).
func (PostStatus) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "status"
	}
	return "text"
}

// CategoryList is an ordered list of categories stored in a single
// column. It round-trips through the postgres array literal form
// ({knitting,sewing}) so the same type works against the sqlite test
// driver, where the column is plain text.
type CategoryList []HandicraftCategory

// GormDataType keys the schema parser to a single text column so the
// slice is never mistaken for a relation; the server-side column type
// comes from GormDBDataType.
func (CategoryList) GormDataType() string {
	return "text"
}

// GormDBDataType maps the list onto category[] on postgres.
func (CategoryList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "category[]"
	}
	return "text"
}

// Value implements driver.Valuer. A nil list stores as NULL.
func (l CategoryList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	parts := make([]string, len(l))
	for i, c := range l {
		parts[i] = string(c)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// Scan implements sql.Scanner.
func (l *CategoryList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return l.scanLiteral(string(v))
	case string:
		return l.scanLiteral(v)
	default:
		return fmt.Errorf("cannot scan %T into CategoryList", src)
	}
}

func (l *CategoryList) scanLiteral(s string) error {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	if s == "" {
		*l = nil
		return nil
	}
	parts := strings.Split(s, ",")
	out := make(CategoryList, 0, len(parts))
	for _, p := range parts {
		out = append(out, HandicraftCategory(strings.Trim(strings.TrimSpace(p), `"`)))
	}
	*l = out
	return nil
}
