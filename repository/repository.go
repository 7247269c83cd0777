// Package repository provides entity-agnostic persistence operations
// shared by every model type. One generic implementation serves users,
// posts, reviews and favorites alike; callers own the transaction
// boundary by choosing the *gorm.DB handle they pass in.
package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

var (
	// ErrUnknownField is returned when an attribute or sort field does
	// not exist on the target entity.
	ErrUnknownField = errors.New("unknown field")
	// ErrMissingField is returned when a required attribute without a
	// default is absent from the input mapping.
	ErrMissingField = errors.New("missing required field")
	// ErrNegativePage is returned for negative skip or limit values.
	ErrNegativePage = errors.New("skip and limit must be non-negative")
)

// Order carries sort directives over named fields. Ascending directives
// are applied before descending ones, each in the order given, so both
// directions compose.
type Order struct {
	Asc  []string
	Desc []string
}

// Repository implements create/read/update/delete for one entity type.
// The zero value is ready to use.
type Repository[M any] struct{}

// New returns a repository for the entity type M.
func New[M any]() *Repository[M] {
	return &Repository[M]{}
}

// Create instantiates an entity from a mapping of attribute name to
// value and inserts it using the given handle. Attribute names may be
// Go field names or column names; unknown names fail with
// ErrUnknownField, required attributes absent from the mapping fail
// with ErrMissingField. Whether the row is committed is up to the
// handle the caller passes (a transaction or the root DB).
func (r *Repository[M]) Create(db *gorm.DB, attrs map[string]interface{}) (*M, error) {
	model, err := r.build(db, attrs)
	if err != nil {
		return nil, err
	}
	if err := db.Create(model).Error; err != nil {
		return nil, err
	}
	return model, nil
}

// Merge instantiates an entity like Create, but when a row with the
// same primary key already exists its columns are updated instead of
// inserting a duplicate.
func (r *Repository[M]) Merge(db *gorm.DB, attrs map[string]interface{}) (*M, error) {
	model, err := r.build(db, attrs)
	if err != nil {
		return nil, err
	}
	sch, err := r.schema(db)
	if err != nil {
		return nil, err
	}
	onConflict := clause.OnConflict{UpdateAll: true}
	if len(sch.Fields) == len(sch.PrimaryFields) {
		// nothing to update outside the key (favorites)
		onConflict = clause.OnConflict{DoNothing: true}
	}
	if err := db.Clauses(onConflict).Create(model).Error; err != nil {
		return nil, err
	}
	return model, nil
}

// GetAll returns one page of entities in primary-key (insertion) order.
// A skip past the end of the table yields an empty slice.
func (r *Repository[M]) GetAll(db *gorm.DB, skip, limit int) ([]M, error) {
	if skip < 0 || limit < 0 {
		return nil, ErrNegativePage
	}
	sch, err := r.schema(db)
	if err != nil {
		return nil, err
	}
	q := db.Model(new(M))
	for _, pk := range sch.PrimaryFieldDBNames {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: pk}})
	}
	var out []M
	if err := q.Offset(skip).Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindBy returns every entity whose named attribute equals value, in
// primary-key order.
func (r *Repository[M]) FindBy(db *gorm.DB, field string, value interface{}) ([]M, error) {
	q, err := r.whereField(db, field, value)
	if err != nil {
		return nil, err
	}
	var out []M
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FirstBy returns the first entity whose named attribute equals value,
// or nil (with a nil error) when there is no match.
func (r *Repository[M]) FirstBy(db *gorm.DB, field string, value interface{}) (*M, error) {
	q, err := r.whereField(db, field, value)
	if err != nil {
		return nil, err
	}
	var out []M
	if err := q.Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// Delete removes the entity. Dependent rows go with it only where the
// schema declares a cascade; the operation itself is single-row.
func (r *Repository[M]) Delete(db *gorm.DB, model *M) error {
	return db.Delete(model).Error
}

// Query returns a handle scoped to the entity type with the given sort
// directives applied, ascending first, then descending.
func (r *Repository[M]) Query(db *gorm.DB, order Order) (*gorm.DB, error) {
	sch, err := r.schema(db)
	if err != nil {
		return nil, err
	}
	q := db.Model(new(M))
	for _, name := range order.Asc {
		col, err := r.column(sch, name)
		if err != nil {
			return nil, err
		}
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}})
	}
	for _, name := range order.Desc {
		col, err := r.column(sch, name)
		if err != nil {
			return nil, err
		}
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: true})
	}
	return q, nil
}

func (r *Repository[M]) whereField(db *gorm.DB, field string, value interface{}) (*gorm.DB, error) {
	sch, err := r.schema(db)
	if err != nil {
		return nil, err
	}
	col, err := r.column(sch, field)
	if err != nil {
		return nil, err
	}
	q := db.Model(new(M)).Where(clause.Eq{Column: clause.Column{Name: col}, Value: value})
	for _, pk := range sch.PrimaryFieldDBNames {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: pk}})
	}
	return q, nil
}

// build constructs an in-memory entity from the attribute mapping and
// checks it for unknown and missing attribute names.
func (r *Repository[M]) build(db *gorm.DB, attrs map[string]interface{}) (*M, error) {
	model := new(M)
	sch, err := r.schema(db)
	if err != nil {
		return nil, err
	}

	rv := reflect.ValueOf(model).Elem()
	provided := make(map[*schema.Field]bool, len(attrs))
	for name, value := range attrs {
		field := sch.LookUpField(name)
		if field == nil {
			return nil, fmt.Errorf("%w: %s has no attribute %q", ErrUnknownField, sch.Name, name)
		}
		if err := field.Set(context.Background(), rv, value); err != nil {
			return nil, fmt.Errorf("set %s.%s: %w", sch.Name, field.Name, err)
		}
		provided[field] = true
	}

	for _, field := range sch.Fields {
		// composite key members count as required; auto-increment keys
		// and defaulted columns do not
		required := field.NotNull || (field.PrimaryKey && !field.AutoIncrement)
		if !required || field.AutoIncrement || field.HasDefaultValue {
			continue
		}
		if !provided[field] {
			return nil, fmt.Errorf("%w: %s.%s", ErrMissingField, sch.Name, field.Name)
		}
	}
	return model, nil
}

func (r *Repository[M]) column(sch *schema.Schema, name string) (string, error) {
	if field := sch.LookUpField(name); field != nil && field.DBName != "" {
		return field.DBName, nil
	}
	return "", fmt.Errorf("%w: %s has no attribute %q", ErrUnknownField, sch.Name, name)
}

func (r *Repository[M]) schema(db *gorm.DB) (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(M)); err != nil {
		return nil, err
	}
	return stmt.Schema, nil
}
