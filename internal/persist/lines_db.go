package persist

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 5 * time.Second
)

// PostgresStore keeps each source as position-ordered rows in a single
// snapshot table, rewritten transactionally on every save. It persists
// the exact same encoded lines as the file backend so both go through
// the same strict codec on load.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres opens a database handle through the pgx stdlib driver.
func OpenPostgres(url string) (*sql.DB, error) {
	return sql.Open("pgx", url)
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Init creates the snapshot table if it is missing.
func (s *PostgresStore) Init(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS snapshot_lines (
				source TEXT    NOT NULL,
				pos    INTEGER NOT NULL,
				line   TEXT    NOT NULL,
				PRIMARY KEY (source, pos)
			)
		`)
		return err
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) WriteLines(ctx context.Context, name string, lines []string) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `
			DELETE FROM snapshot_lines WHERE source = $1
		`, name); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO snapshot_lines (source, pos, line)
			VALUES ($1, $2, $3)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, line := range lines {
			if _, err := stmt.ExecContext(ctx, name, i, line); err != nil {
				return err
			}
		}

		return tx.Commit()
	})
}

func (s *PostgresStore) ReadLines(ctx context.Context, name string) ([]string, error) {
	var out []string

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT line
			FROM snapshot_lines
			WHERE source = $1
			ORDER BY pos ASC
		`, name)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var line string
			if err := rows.Scan(&line); err != nil {
				return err
			}
			out = append(out, line)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
