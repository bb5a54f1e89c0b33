package sizes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/multierr"
	_ "modernc.org/sqlite"
)

var (
	ErrInvalidIdentifier = errors.New("sizes: invalid identifier")
	ErrInvalidSize       = errors.New("sizes: invalid size")
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// OpenSQLite opens a database file with the pure Go driver. ":memory:" is
// accepted; the pool is limited to one connection so every query sees the
// same in-memory database.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func checkIdentifiers(table, column string) error {
	var err error
	for _, name := range []string{table, column} {
		if !identifier.MatchString(name) {
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrInvalidIdentifier, name))
		}
	}
	return err
}

// LoadSQLite reads column of table ordered by its idx key. Every value must
// be a positive finite size.
func LoadSQLite(ctx context.Context, db *sql.DB, table, column string) ([]float64, error) {
	if err := checkIdentifiers(table, column); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT %s FROM %s ORDER BY idx`, column, table))
	if err != nil {
		return nil, fmt.Errorf("failed to query sizes: %w", err)
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan size: %w", err)
		}
		if !(v > 0) || v > maxSize {
			return nil, fmt.Errorf("%w: row %d of %s.%s is %v", ErrInvalidSize, len(values), table, column, v)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sizes: %w", err)
	}
	return values, nil
}

const maxSize = 1 << 52

// StoreSQLite replaces table with values, one row per index.
func StoreSQLite(ctx context.Context, db *sql.DB, table, column string, values []float64) (err error) {
	if err := checkIdentifiers(table, column); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, tx.Rollback())
		}
	}()

	if _, err = tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
		return fmt.Errorf("failed to drop table: %w", err)
	}
	schema := fmt.Sprintf(`CREATE TABLE %s (idx INTEGER PRIMARY KEY, %s REAL NOT NULL)`, table, column)
	if _, err = tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s (idx, %s) VALUES (?, ?)`, table, column))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, v := range values {
		if _, err = stmt.ExecContext(ctx, i, v); err != nil {
			return fmt.Errorf("failed to insert size %d: %w", i, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
