package store

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

type sqliteStore struct {
	db  *sql.DB
	cfg config
}

var _ Store = (*sqliteStore)(nil)

// NewSQLite returns a Store backed by SQLite.
// If dbPath is empty or ":memory:", an in-memory database is used.
func NewSQLite(ctx context.Context, dbPath string, opts ...Option) (Store, error) {
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrent performance.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS settings (
		tenant TEXT NOT NULL,
		field TEXT NOT NULL,
		value BLOB NOT NULL,
		PRIMARY KEY (tenant, field)
	)`); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{
		db:  db,
		cfg: applyOptions(opts),
	}, nil
}

func (s *sqliteStore) queryCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, s.cfg.queryTimeout)
}

func (s *sqliteStore) LoadAll(ctx context.Context) ([]Record, error) {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	rows, err := s.db.QueryContext(qctx,
		`SELECT tenant, field, value FROM settings ORDER BY tenant`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	byTenant := make(map[string]map[string]any)
	for rows.Next() {
		var key, field string
		var data []byte
		if err := rows.Scan(&key, &field, &data); err != nil {
			return nil, err
		}
		val, err := decodeValue(data)
		if err != nil {
			return nil, err
		}
		fields, ok := byTenant[key]
		if !ok {
			fields = make(map[string]any)
			byTenant[key] = fields
			records = append(records, Record{Tenant: decodeTenant(key), Document: fields})
		}
		fields[field] = val
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *sqliteStore) UpsertField(ctx context.Context, tenant, field string, value any) error {
	data, err := encodeValue(value)
	if err != nil {
		return err
	}
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	_, err = s.db.ExecContext(qctx,
		`INSERT INTO settings (tenant, field, value) VALUES (?, ?, ?)
		ON CONFLICT(tenant, field) DO UPDATE SET value = excluded.value`,
		encodeTenant(tenant), field, data,
	)
	return err
}

func (s *sqliteStore) UnsetField(ctx context.Context, tenant, field string) error {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	_, err := s.db.ExecContext(qctx,
		`DELETE FROM settings WHERE tenant = ? AND field = ?`,
		encodeTenant(tenant), field,
	)
	return err
}

func (s *sqliteStore) DeleteRecord(ctx context.Context, tenant string) error {
	qctx, cancel := s.queryCtx(ctx)
	defer cancel()
	_, err := s.db.ExecContext(qctx,
		`DELETE FROM settings WHERE tenant = ?`, encodeTenant(tenant))
	return err
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
