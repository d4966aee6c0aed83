package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"
)

// SQLSnapCache is a SQL-backed cache mapping raw clicks to road-snapped
// coordinates. Keys are the raw coordinate rounded to six decimals, the same
// precision the share hash keeps.
type SQLSnapCache struct {
	DB *sql.DB
}

func NewSQLSnapCache(db *sql.DB) *SQLSnapCache {
	return &SQLSnapCache{DB: db}
}

func snapKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

// Fetch the snapped coordinate for raw, if cached.
func (s *SQLSnapCache) Get(
	ctx context.Context,
	raw domain.Coordinates,
) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "snap.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("snap cache: db is nil")
	}

	var lat, lng float64
	err = s.DB.QueryRowContext(ctx, `
	SELECT snapped_lat, snapped_lng
	FROM snap_cache
	WHERE raw_key = $1;
	`, snapKey(raw)).Scan(&lat, &lng)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get snap cache: query snap_cache table: %w", err)
	}

	return domain.Coordinates{Lat: lat, Lng: lng}, true, nil
}

// Store a raw -> snapped mapping.
func (s *SQLSnapCache) Put(ctx context.Context, raw, snapped domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("snap cache: db is nil")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO snap_cache (raw_key, snapped_lat, snapped_lng)
	VALUES ($1, $2, $3)
	ON CONFLICT (raw_key) DO UPDATE
	SET snapped_lat = EXCLUDED.snapped_lat,
		snapped_lng = EXCLUDED.snapped_lng;
	`, snapKey(raw), snapped.Lat, snapped.Lng)
	if err != nil {
		return fmt.Errorf("insert snap cache key=%q: %w", snapKey(raw), err)
	}
	return nil
}
