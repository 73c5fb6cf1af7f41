// Package main provides a CLI tool for creating the schema and seeding
// the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"salesledger/internal/core/id"
	"salesledger/internal/core/types"
	"salesledger/internal/infrastructure/storage/postgres"
	"salesledger/pkg/logger"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS cat_products (
		id            UUID PRIMARY KEY,
		code          TEXT NOT NULL,
		name          TEXT NOT NULL,
		sku           TEXT NOT NULL DEFAULT '',
		unit_price    NUMERIC(19,4) NOT NULL DEFAULT 0,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_cat_products_code
		ON cat_products (code) WHERE deletion_mark = FALSE`,

	`CREATE TABLE IF NOT EXISTS cat_customers (
		id            UUID PRIMARY KEY,
		code          TEXT NOT NULL,
		name          TEXT NOT NULL,
		phone         TEXT NOT NULL DEFAULT '',
		email         TEXT NOT NULL DEFAULT '',
		address       TEXT NOT NULL DEFAULT '',
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_cat_customers_code
		ON cat_customers (code) WHERE deletion_mark = FALSE`,

	`CREATE TABLE IF NOT EXISTS doc_orders (
		id            UUID PRIMARY KEY,
		number        TEXT NOT NULL UNIQUE,
		date          TIMESTAMPTZ NOT NULL,
		comment       TEXT NOT NULL DEFAULT '',
		customer_id   UUID NOT NULL,
		currency      TEXT NOT NULL,
		total         NUMERIC(19,4) NOT NULL,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INTEGER NOT NULL DEFAULT 1,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_doc_orders_customer
		ON doc_orders (customer_id, date DESC)`,

	`CREATE TABLE IF NOT EXISTS doc_order_lines (
		document_id  UUID NOT NULL REFERENCES doc_orders (id),
		line_no      INTEGER NOT NULL,
		product_id   TEXT NOT NULL,
		product_name TEXT NOT NULL,
		sku          TEXT NOT NULL DEFAULT '',
		quantity     INTEGER NOT NULL,
		unit_price   NUMERIC(19,4) NOT NULL,
		subtotal     NUMERIC(19,4) NOT NULL,
		PRIMARY KEY (document_id, line_no)
	)`,

	`CREATE TABLE IF NOT EXISTS doc_invoices (
		id            UUID PRIMARY KEY,
		number        TEXT NOT NULL UNIQUE,
		date          TIMESTAMPTZ NOT NULL,
		comment       TEXT NOT NULL DEFAULT '',
		order_id      UUID REFERENCES doc_orders (id),
		customer_id   UUID NOT NULL,
		currency      TEXT NOT NULL,
		total         NUMERIC(19,4) NOT NULL,
		due_date      TIMESTAMPTZ NOT NULL,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INTEGER NOT NULL DEFAULT 1,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_doc_invoices_customer
		ON doc_invoices (customer_id, date DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_doc_invoices_due
		ON doc_invoices (due_date)`,

	`CREATE TABLE IF NOT EXISTS doc_invoice_payments (
		id               UUID PRIMARY KEY,
		invoice_id       UUID NOT NULL REFERENCES doc_invoices (id),
		amount           NUMERIC(19,4) NOT NULL,
		secondary_amount NUMERIC(19,4) NOT NULL,
		method           TEXT NOT NULL,
		paid_at          TIMESTAMPTZ NOT NULL,
		note             TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_doc_invoice_payments_invoice
		ON doc_invoice_payments (invoice_id, paid_at)`,

	`CREATE TABLE IF NOT EXISTS sys_sequences (
		key         TEXT PRIMARY KEY,
		current_val BIGINT NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS sys_settings (
		singleton     BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
		exchange_rate NUMERIC(19,4) NOT NULL DEFAULT 0,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sys_audit (
		id                 UUID PRIMARY KEY,
		entity             TEXT NOT NULL,
		entity_id          UUID NOT NULL,
		action             TEXT NOT NULL,
		actor_id           TEXT NOT NULL DEFAULT '',
		payload            JSONB,
		payload_compressed BYTEA,
		compression_algo   TEXT NOT NULL DEFAULT 'none',
		created_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sys_audit_entity
		ON sys_audit (entity, entity_id, created_at DESC)`,
}

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	for _, stmt := range schema {
		if _, err := pool.Pool.Exec(ctx, stmt); err != nil {
			log.Fatalw("failed to apply schema statement", "error", err)
		}
	}
	log.Info("schema is up to date")

	if err := seedExchangeRate(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed exchange rate", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedExchangeRate(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	rateStr := os.Getenv("EXCHANGE_RATE")
	if rateStr == "" {
		rateStr = "88000"
	}
	rate, err := types.NewMoneyFromString(rateStr)
	if err != nil {
		return fmt.Errorf("parse exchange rate %q: %w", rateStr, err)
	}

	// Keep an already configured rate; only fill in the initial row.
	commandTag, err := pool.Pool.Exec(ctx, `
		INSERT INTO sys_settings (singleton, exchange_rate, updated_at)
		VALUES (true, $1, now())
		ON CONFLICT (singleton) DO NOTHING
	`, rate)
	if err != nil {
		return fmt.Errorf("insert settings: %w", err)
	}

	if commandTag.RowsAffected() > 0 {
		log.Infow("exchange rate initialized", "rate", rate.String())
	} else {
		log.Info("exchange rate already configured, keeping existing value")
	}
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	products := []struct {
		code  string
		name  string
		sku   string
		price string
	}{
		{"PRD-00001", "Arabica Coffee Beans 1kg", "COF-ARB-1K", "18.50"},
		{"PRD-00002", "Burr Coffee Grinder", "GRD-BRR-01", "120.00"},
		{"PRD-00003", "Ceramic Pour-Over Dripper", "DRP-CRM-02", "24.90"},
		{"PRD-00004", "Paper Filters (100 pack)", "FLT-PPR-100", "6.75"},
		{"PRD-00005", "Electric Gooseneck Kettle", "KTL-GSN-1L", "89.00"},
		{"PRD-00006", "Barista Training Session", "SVC-TRN-01", "150.00"},
	}

	for _, p := range products {
		price, err := types.NewMoneyFromString(p.price)
		if err != nil {
			return fmt.Errorf("parse price for %s: %w", p.code, err)
		}
		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO cat_products (id, code, name, sku, unit_price, version, deletion_mark)
			VALUES ($1, $2, $3, $4, $5, 1, false)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), p.code, p.name, p.sku, price)
		if err != nil {
			log.Warnw("failed to seed product", "code", p.code, "error", err)
		}
	}

	customers := []struct {
		code    string
		name    string
		phone   string
		email   string
		address string
	}{
		{"CUS-00001", "Morning Brew Cafe", "+1-555-0101", "orders@morningbrew.example", "12 Market St"},
		{"CUS-00002", "Downtown Roasters", "+1-555-0102", "purchasing@dtroasters.example", "480 5th Ave"},
		{"CUS-00003", "Hotel Meridian", "+1-555-0103", "fb@meridian.example", "1 Harbor Blvd"},
	}

	for _, c := range customers {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_customers (id, code, name, phone, email, address, version, deletion_mark)
			VALUES ($1, $2, $3, $4, $5, $6, 1, false)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), c.code, c.name, c.phone, c.email, c.address)
		if err != nil {
			log.Warnw("failed to seed customer", "code", c.code, "error", err)
		}
	}

	log.Info("demo data seeded successfully")
	return nil
}
