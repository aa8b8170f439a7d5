// Package sidechannel implements the durable local append-only log used
// as the fallback target when primary store writes fail. Records wait
// here until a reconciliation pass merges them back into the primary
// store; this package only appends and reads, it never reconciles.
package sidechannel

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"

	"github.com/grc-lab/riskdesk/pkg/domain/interfaces"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	key TEXT NOT NULL,
	payload BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_key ON records (key);
`

type SQLite struct {
	db *sql.DB
}

var _ interfaces.SideChannel = &SQLite{}

// New opens (creating if needed) a side-channel database at the given path
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open side-channel database", goerr.V("path", path))
	}

	// A single writer avoids SQLITE_BUSY under concurrent appends
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to initialize side-channel schema", goerr.V("path", path))
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Append(ctx context.Context, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal side-channel payload", goerr.V("key", key))
	}

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO records (key, payload, created_at) VALUES (?, ?, ?)",
		key, data, time.Now().UTC(),
	); err != nil {
		return goerr.Wrap(err, "failed to append side-channel record", goerr.V("key", key))
	}

	return nil
}

func (s *SQLite) ReadAll(ctx context.Context, key string) ([]*interfaces.SideChannelRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, payload, created_at FROM records WHERE key = ? ORDER BY id",
		key,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read side-channel records", goerr.V("key", key))
	}
	defer rows.Close()

	var records []*interfaces.SideChannelRecord
	for rows.Next() {
		var rec interfaces.SideChannelRecord
		var payload []byte
		if err := rows.Scan(&rec.Key, &payload, &rec.CreatedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan side-channel record", goerr.V("key", key))
		}
		rec.Payload = json.RawMessage(payload)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate side-channel records", goerr.V("key", key))
	}

	return records, nil
}

func (s *SQLite) Count(ctx context.Context, key string) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM records WHERE key = ?", key,
	).Scan(&count); err != nil {
		return 0, goerr.Wrap(err, "failed to count side-channel records", goerr.V("key", key))
	}
	return count, nil
}

func (s *SQLite) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT key FROM records ORDER BY key")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list side-channel keys")
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, goerr.Wrap(err, "failed to scan side-channel key")
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate side-channel keys")
	}

	return keys, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
