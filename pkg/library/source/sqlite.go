package source

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteSource loads formula definitions from a SQLite database. Each row in
// the configured table is one definition; constants live in a companion
// table named <table>_constants when it exists.
//
// The source is suitable for deployments where designers edit formulas
// through a tool that writes to a shared database rather than to YAML files.
type SQLiteSource struct {
	db     *sql.DB
	dsn    string
	table  string
	logger *slog.Logger
}

// SQLiteSourceConfig configures a SQLite formula source.
type SQLiteSourceConfig struct {
	// Path is the path to the SQLite database file.
	Path string

	// Table is the table to read definitions from. It must have name,
	// expr and description text columns. Default: "formulas".
	Table string
}

// NewSQLiteSource opens a SQLite formula source.
func NewSQLiteSource(cfg SQLiteSourceConfig, logger *slog.Logger) (*SQLiteSource, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.Table == "" {
		cfg.Table = "formulas"
	}
	if err := checkTableName(cfg.Table); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports single writer
	db.SetMaxIdleConns(1)

	return &SQLiteSource{
		db:     db,
		dsn:    cfg.Path,
		table:  cfg.Table,
		logger: logger,
	}, nil
}

// Load implements Source.
func (s *SQLiteSource) Load(ctx context.Context) (*Document, error) {
	doc := &Document{Constants: make(map[string]float64)}

	query := fmt.Sprintf("SELECT name, expr, COALESCE(description, '') FROM %s ORDER BY name", s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query formulas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d Definition
		if err := rows.Scan(&d.Name, &d.Expr, &d.Description); err != nil {
			return nil, fmt.Errorf("failed to scan formula row: %w", err)
		}
		doc.Definitions = append(doc.Definitions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read formula rows: %w", err)
	}

	if err := s.loadConstants(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Debug("loaded formulas from database",
		"path", s.dsn,
		"table", s.table,
		"formula_count", len(doc.Definitions),
	)

	return doc, nil
}

// loadConstants reads the companion constants table if it exists.
func (s *SQLiteSource) loadConstants(ctx context.Context, doc *Document) error {
	table := s.table + "_constants"

	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check constants table: %w", err)
	}
	if exists == 0 {
		return nil
	}

	query := fmt.Sprintf("SELECT name, value FROM %s", table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query constants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return fmt.Errorf("failed to scan constant row: %w", err)
		}
		doc.Constants[name] = value
	}
	return rows.Err()
}

// Close closes the underlying database handle.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// String implements Source.
func (s *SQLiteSource) String() string {
	return fmt.Sprintf("sqlite(%s)", s.dsn)
}

// checkTableName rejects table names that cannot be safely interpolated
// into a query. Table names cannot be bound as parameters in SQL.
func checkTableName(name string) error {
	for i, r := range name {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return fmt.Errorf("invalid table name %q", name)
			}
		default:
			return fmt.Errorf("invalid table name %q", name)
		}
	}
	if name == "" {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}
