package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-planner-service/internal/platform/obs"
	"route-planner-service/internal/ports"
)

// SQLStateStore keeps session state in the planner_state table.
type SQLStateStore struct {
	DB *sql.DB
}

func NewSQLStateStore(db *sql.DB) *SQLStateStore {
	return &SQLStateStore{DB: db}
}

func (s *SQLStateStore) Load(ctx context.Context, key string) (_ []byte, err error) {
	defer obs.Time(ctx, "state.sql.Load")(&err)

	if s.DB == nil {
		return nil, errors.New("sql state store: db is nil")
	}

	var data []byte
	err = s.DB.QueryRowContext(ctx, `
	SELECT data
	FROM planner_state
	WHERE key = $1;
	`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load state key=%s: %w", key, err)
	}
	return data, nil
}

func (s *SQLStateStore) Save(ctx context.Context, key string, data []byte) error {
	if s.DB == nil {
		return errors.New("sql state store: db is nil")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO planner_state (key, data, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (key) DO UPDATE
	SET data = EXCLUDED.data,
		updated_at = EXCLUDED.updated_at;
	`, key, data)
	if err != nil {
		return fmt.Errorf("save state key=%s: %w", key, err)
	}
	return nil
}
