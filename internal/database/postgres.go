package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgres establishes a pgx connection pool and verifies it with a ping,
// all within a 10-second timeout.
//
// Typical usage:
//
//	pool, err := database.NewPostgres(cfg.DBConnection)
//	if err != nil { … }
//	defer pool.Close()
func NewPostgres(uri string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		return nil, err
	}

	// Verify the connection with a ping.
	if err := pool.Ping(ctx); err != nil {
		// Close in case of ping failure to avoid leaking sockets.
		pool.Close()
		return nil, err
	}

	return pool, nil
}
