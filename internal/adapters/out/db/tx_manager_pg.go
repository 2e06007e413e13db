// internal/adapters/out/db/tx_manager_pg.go
package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	dbcommon "storefront/internal/adapters/out/db/common"
)

// TxManagerPG implements the usecase Tx port on database/sql. The open
// transaction rides the context, so every repository call inside fn runs on
// the same *sql.Tx via dbcommon.GetRunner.
type TxManagerPG struct {
	DB *sql.DB
}

func NewTxManagerPG(db *sql.DB) *TxManagerPG {
	return &TxManagerPG{DB: db}
}

func (m *TxManagerPG) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested call: join the ambient transaction instead of opening another.
	if dbcommon.TxFromCtx(ctx) != nil {
		return fn(ctx)
	}

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	txCtx := dbcommon.CtxWithTx(ctx, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit tx")
	}
	return nil
}
