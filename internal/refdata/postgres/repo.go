// Package postgres reads historical merit records from a PostgreSQL table for
// deployments that maintain the merit archive in a database instead of the
// bundled YAML dataset. The table is consumed read-only.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/humna-mustafa/PakUni-sub008/internal/models"
)

// HistoryRepo loads historical merit records from PostgreSQL
type HistoryRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewHistoryRepo creates a history repository over an open connection
func NewHistoryRepo(db *sqlx.DB, timeout time.Duration) *HistoryRepo {
	return &HistoryRepo{db: db, timeout: timeout}
}

// Connect opens and pings a PostgreSQL connection
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// LoadSince returns all merit records from the given year onward, oldest first
func (r *HistoryRepo) LoadSince(ctx context.Context, fromYear int) ([]models.HistoricalMeritRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT institution_id, program, campus, year, session, category,
		       COALESCE(quota_type, '') AS quota_type,
		       closing_merit,
		       COALESCE(opening_merit, 0) AS opening_merit,
		       total_seats
		FROM merit_history
		WHERE year >= $1
		ORDER BY year ASC, institution_id ASC, program ASC`

	var records []models.HistoricalMeritRecord
	if err := r.db.SelectContext(ctx, &records, query, fromYear); err != nil {
		return nil, fmt.Errorf("failed to load merit history: %w", err)
	}
	return records, nil
}

// CountByYear reports record counts per year, used by the health endpoint
func (r *HistoryRepo) CountByYear(ctx context.Context) (map[int]int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows := []struct {
		Year  int `db:"year"`
		Count int `db:"count"`
	}{}
	query := `SELECT year, COUNT(*) AS count FROM merit_history GROUP BY year`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count merit history: %w", err)
	}

	counts := make(map[int]int, len(rows))
	for _, row := range rows {
		counts[row.Year] = row.Count
	}
	return counts, nil
}
