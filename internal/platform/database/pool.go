package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	dErrors "caresure/pkg/domain-errors"
)

// Open connects to PostgreSQL through the pgx stdlib driver. Used only for
// the durable audit sink; the ledger itself is in-memory.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not open database")
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not reach database")
	}
	return db, nil
}
