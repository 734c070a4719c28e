package sql_authority

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/anthanhphan/go-sequence-service/pkg/idgen"
)

var _ idgen.RangeAuthority = (*Authority)(nil)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const globalScope = "*"

// Authority stores one row per (scope, name) in a sequence table and bumps
// it by delta inside a transaction for every segment.
type Authority struct {
	db      *sql.DB
	table   string
	appName string

	insertQuery string
	updateQuery string
	selectQuery string
}

func New(db *sql.DB, table, appName string) (*Authority, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid sequence table name %q", table)
	}
	if appName == "" || appName == globalScope {
		return nil, fmt.Errorf("invalid app name %q", appName)
	}

	return &Authority{
		db:          db,
		table:       table,
		appName:     appName,
		insertQuery: fmt.Sprintf("INSERT INTO %s (scope, name, value) VALUES (?, ?, ?) ON CONFLICT (scope, name) DO NOTHING", table),
		updateQuery: fmt.Sprintf("UPDATE %s SET value = value + ? WHERE scope = ? AND name = ?", table),
		selectQuery: fmt.Sprintf("SELECT value FROM %s WHERE scope = ? AND name = ?", table),
	}, nil
}

// EnsureSchema creates the sequence table if it does not exist.
func (a *Authority) EnsureSchema(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	scope TEXT NOT NULL,
	name  TEXT NOT NULL,
	value INTEGER NOT NULL,
	PRIMARY KEY (scope, name)
)`, a.table)
	if _, err := a.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create sequence table %s: %w", a.table, err)
	}
	return nil
}

func (a *Authority) AcquireLocalMax(ctx context.Context, req idgen.AcquireRequest) (value int64, err error) {
	scope := a.appName
	if req.Global {
		scope = globalScope
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin sequence tx for %q: %w", req.Name, err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, ignoreDone(tx.Rollback()))
		}
	}()

	// The write comes first so the row lock is taken before reading.
	if _, err = tx.ExecContext(ctx, a.insertQuery, scope, req.Name, req.MinValue); err != nil {
		return 0, fmt.Errorf("seed sequence %q: %w", req.Name, err)
	}
	if _, err = tx.ExecContext(ctx, a.updateQuery, req.Delta, scope, req.Name); err != nil {
		return 0, fmt.Errorf("bump sequence %q: %w", req.Name, err)
	}
	if err = tx.QueryRowContext(ctx, a.selectQuery, scope, req.Name).Scan(&value); err != nil {
		return 0, fmt.Errorf("read sequence %q: %w", req.Name, err)
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sequence %q: %w", req.Name, err)
	}
	return value, nil
}

func (a *Authority) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func ignoreDone(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}
