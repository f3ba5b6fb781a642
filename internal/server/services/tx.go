package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/wastecms/internal/dbx"
)

// inTx runs fn inside a transaction when db is a real connection. Other
// handles, including the nil one used with the in-memory repositories, are
// passed to fn as is.
func inTx(ctx context.Context, db dbx.DBTX, fn dbx.TxFunc) error {
	if conn, ok := db.(*sql.DB); ok && conn != nil {
		return dbx.WithTx(ctx, conn, nil, fn)
	}
	return fn(ctx, db)
}
