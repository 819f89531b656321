//
// The Aynumosir project is pleased to support the open source community by making ainu-mcp-go available.
//
// Copyright (C) 2025 The Aynumosir Authors.  All rights reserved.
//
// ainu-mcp-go is licensed under the Apache License Version 2.0.
//
//

// Package sqlite provides a file backed translation cache that survives
// restarts.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aynumosir/ainu-mcp-go/cache"
)

var _ cache.Cache = (*Cache)(nil)

// Cache is the sqlite translation cache.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL ignores entries older than d. Zero keeps them forever.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) { c.ttl = d }
}

// New opens (or creates) the database at path and runs migrations.
func New(path string, opts ...Option) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite cache: open: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite cache: wal: %w", err)
	}
	c := &Cache{db: db, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) migrate() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS translations (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("sqlite cache: migrate: %w", err)
	}
	return nil
}

// Get implements cache.Cache.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value     string
		createdAt int64
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT value, created_at FROM translations WHERE key = ?`, key).Scan(&value, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite cache: get: %w", err)
	}
	if c.ttl > 0 && c.now().Sub(time.Unix(createdAt, 0)) > c.ttl {
		return "", false, nil
	}
	return value, true, nil
}

// Set implements cache.Cache.
func (c *Cache) Set(ctx context.Context, key, value string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO translations (key, value, created_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value, created_at=excluded.created_at
	`, key, value, c.now().Unix())
	if err != nil {
		return fmt.Errorf("sqlite cache: set: %w", err)
	}
	return nil
}

// Close implements cache.Cache.
func (c *Cache) Close() error {
	return c.db.Close()
}
