package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// TxManager implements shared.TransactionManager on a gorm connection.
// The transactional handle travels in the context, so every repository
// call made inside WithinTransaction joins the same database transaction.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over the given connection
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// WithinTransaction runs fn inside a database transaction. Nested calls
// join the transaction already carried by the context.
func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

func txFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// session resolves the database handle for a repository call: the
// context's transaction when inside WithinTransaction, the plain
// connection otherwise.
func session(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}
