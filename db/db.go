package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Options tunes the pool. Zero fields take the defaults below; league
// traffic is a handful of organizers and public standings readers.
type Options struct {
	PingTimeout     time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

const (
	defaultPingTimeout     = 5 * time.Second
	defaultMaxOpenConns    = 10
	defaultConnMaxLifetime = 30 * time.Minute
)

func (o Options) withDefaults() Options {
	if o.PingTimeout <= 0 {
		o.PingTimeout = defaultPingTimeout
	}
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = defaultMaxOpenConns
	}
	if o.MaxIdleConns <= 0 || o.MaxIdleConns > o.MaxOpenConns {
		o.MaxIdleConns = o.MaxOpenConns
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = defaultConnMaxLifetime
	}
	return o
}

// Connect opens a Postgres pool and waits for the server to answer.
func Connect(ctx context.Context, dsn string, opts Options) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("database DSN is empty")
	}
	opts = opts.withDefaults()

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}
	conn.SetMaxOpenConns(opts.MaxOpenConns)
	conn.SetMaxIdleConns(opts.MaxIdleConns)
	conn.SetConnMaxLifetime(opts.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		pingErr := fmt.Errorf("database did not answer within %v: %w", opts.PingTimeout, err)
		return nil, errors.Join(pingErr, conn.Close())
	}
	return conn, nil
}
