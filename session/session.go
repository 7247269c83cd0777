// Package session hands out transaction-scoped database handles for one
// unit of work, typically one request. It is the piece request handlers
// receive by dependency injection.
package session

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// Provider produces scoped handles over a shared connection pool.
type Provider struct {
	db *gorm.DB
}

// NewProvider wraps an initialized gorm DB.
func NewProvider(db *gorm.DB) *Provider {
	return &Provider{db: db}
}

// Run executes fn inside a fresh transaction bound to ctx.
//
// The provider rolls back when fn returns an error or panics. On normal
// return any work fn did not commit is discarded: committing is an
// explicit call on the handle inside fn, never implied by success. The
// underlying connection goes back to the pool on every exit path.
func (p *Provider) Run(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := p.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	// Discard anything left uncommitted. After an explicit commit inside
	// fn this is a no-op on a finished transaction.
	if err := tx.Rollback().Error; err != nil && !finished(err) {
		return err
	}
	return nil
}

func finished(err error) bool {
	return errors.Is(err, sql.ErrTxDone) || errors.Is(err, gorm.ErrInvalidTransaction)
}
