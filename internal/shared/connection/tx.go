package connection

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Session returns a gorm handle bound to ctx that runs on tx when one is given.
// Services open transactions on the *sql.DB shared with gorm, so repositories
// join them by swapping the statement connection pool.
func Session(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	session := db.WithContext(ctx)
	if tx != nil {
		session.Statement.ConnPool = tx
	}
	return session
}
