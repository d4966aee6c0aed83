package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		id BIGINT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		customer_name TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL DEFAULT 'new',
		cod BIGINT NOT NULL DEFAULT 0
	);
	`

	createSnapCacheQuery := `
	CREATE TABLE IF NOT EXISTS snap_cache (
		raw_key TEXT PRIMARY KEY,
		snapped_lat DOUBLE PRECISION NOT NULL,
		snapped_lng DOUBLE PRECISION NOT NULL
	);
	`

	createStateQuery := `
	CREATE TABLE IF NOT EXISTS planner_state (
		key TEXT PRIMARY KEY,
		data BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_orders_status
	ON orders(status);
	`

	statements := []string{
		createOrdersQuery,
		createSnapCacheQuery,
		createStateQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type OrderSeed struct {
	ID           int64   `json:"id"`
	Code         string  `json:"code"`
	CustomerName string  `json:"customer_name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Status       string  `json:"status"`
	COD          int64   `json:"cod"`
}

// ReadOrderSeeds parses and validates an order seed file.
func ReadOrderSeeds(jsonPath string) ([]OrderSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed orders: read %q: %w", jsonPath, err)
	}

	var data []OrderSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed orders: parse json: %w", err)
	}

	rows := make([]OrderSeed, 0, len(data))
	for i, item := range data {
		if item.ID <= 0 {
			return nil, fmt.Errorf("seed orders: invalid id at index %d: %d", i+1, item.ID)
		}

		item.Code = strings.TrimSpace(item.Code)
		item.CustomerName = strings.TrimSpace(item.CustomerName)
		if item.Code == "" || item.CustomerName == "" {
			return nil, fmt.Errorf("seed orders: item at index %d: code and customer_name are required", i+1)
		}
		if item.Lat < -90 || item.Lat > 90 || item.Lng < -180 || item.Lng > 180 {
			return nil, fmt.Errorf("seed orders: item at index %d: coordinates out of range", i+1)
		}
		if item.Status == "" {
			item.Status = "new"
		}
		rows = append(rows, item)
	}

	return rows, nil
}

// Populate the orders table from a JSON seed file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	rows, err := ReadOrderSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed orders: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO orders (
		id,
		code,
		customer_name,
		latitude,
		longitude,
		status,
		cod
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE
	SET code = EXCLUDED.code,
		customer_name = EXCLUDED.customer_name,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		status = EXCLUDED.status,
		cod = EXCLUDED.cod;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed orders: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range rows {
		if _, err := stmt.Exec(o.ID, o.Code, o.CustomerName, o.Lat, o.Lng, o.Status, o.COD); err != nil {
			return fmt.Errorf("seed orders: insert id=%d: %w", o.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed orders: commit tx: %w", err)
	}

	return nil
}
