package repository

import (
	"fmt"

	"database/sql"

	"github.com/XSAM/otelsql"
	"go.opentelemetry.io/otel/attribute"

	"github.com/stockroom/product-catalog/internal/config"

	_ "github.com/lib/pq"
)

// Schema bootstrap mirrors the canonical products migration: indexed name and
// price, name uniqueness enforced by the store.
const productsSchema = `
CREATE TABLE IF NOT EXISTS products (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL UNIQUE,
	price NUMERIC(10, 2) NOT NULL,
	stock INTEGER NOT NULL DEFAULT 0,
	description TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_products_name ON products (name);
CREATE INDEX IF NOT EXISTS idx_products_price ON products (price);
`

type Repository struct {
	DB      *sql.DB
	Product ProductRepository
}

func New(cfg *config.Config) (*Repository, error) {
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := otelsql.RegisterDBStatsMetrics(db,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql"))); err != nil {
		return nil, fmt.Errorf("failed to register db stats metrics: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(productsSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure products schema: %w", err)
	}

	return &Repository{
		DB:      db,
		Product: NewProductRepo(db),
	}, nil
}

func (r *Repository) Close() error {
	return r.DB.Close()
}
