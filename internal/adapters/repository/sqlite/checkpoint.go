// Package sqlite provides a checkpoint saver backed by SQLite, suitable
// for single-node deployments and durable local runs.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/whitewum/tinkerpop/internal/core/checkpoint"
	"github.com/whitewum/tinkerpop/pkg/serialization"
)

type state struct {
	Frontier    [][]byte               `msgpack:"frontier"`
	SideEffects map[string]interface{} `msgpack:"side_effects,omitempty"`
}

// CheckpointSaver implements checkpoint.Saver for SQLite.
type CheckpointSaver struct {
	db         *sql.DB
	serializer *serialization.Serializer
	tableName  string
}

// Open opens (or creates) a SQLite database at path and ensures the schema.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return db, nil
}

// NewCheckpointSaver creates a SQLite checkpoint saver and ensures its
// table exists. A nil serializer defaults to the migration serializer.
func NewCheckpointSaver(db *sql.DB, serializer *serialization.Serializer) (*CheckpointSaver, error) {
	if serializer == nil {
		serializer = serialization.Default()
	}
	s := &CheckpointSaver{db: db, serializer: serializer, tableName: "traversal_checkpoints"}
	if _, err := db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			traversal_id TEXT NOT NULL,
			superstep INTEGER NOT NULL,
			state BLOB NOT NULL,
			metadata TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			version TEXT NOT NULL
		)`, s.tableName)); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint table: %w", err)
	}
	return s, nil
}

var _ checkpoint.Saver = (*CheckpointSaver)(nil)

// Save stores a checkpoint, upserting on ID.
func (s *CheckpointSaver) Save(ctx context.Context, cp *checkpoint.Checkpoint) error {
	if cp == nil {
		return checkpoint.ErrInvalidCheckpointID
	}
	if err := cp.Validate(); err != nil {
		return err
	}
	data, err := s.serializer.Serialize(state{Frontier: cp.Frontier, SideEffects: cp.SideEffects})
	if err != nil {
		return fmt.Errorf("failed to serialize checkpoint state: %w", err)
	}
	metadataJSON, err := json.Marshal(cp.Metadata)
	if err != nil {
		return fmt.Errorf("failed to serialize metadata: %w", err)
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, traversal_id, superstep, state, metadata, timestamp, version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			superstep = excluded.superstep,
			state = excluded.state,
			metadata = excluded.metadata,
			timestamp = excluded.timestamp
	`, s.tableName)
	_, err = s.db.ExecContext(ctx, query,
		cp.ID, cp.TraversalID, cp.Superstep, data, string(metadataJSON), cp.Timestamp.UnixNano(), cp.Version)
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

// Load retrieves a checkpoint by ID.
func (s *CheckpointSaver) Load(ctx context.Context, id string) (*checkpoint.Checkpoint, error) {
	if id == "" {
		return nil, checkpoint.ErrInvalidCheckpointID
	}
	query := fmt.Sprintf(`
		SELECT id, traversal_id, superstep, state, metadata, timestamp, version
		FROM %s WHERE id = ?
	`, s.tableName)
	row := s.db.QueryRowContext(ctx, query, id)
	cp, err := s.scan(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, checkpoint.ErrCheckpointNotFound
		}
		return nil, err
	}
	return cp, nil
}

// List returns checkpoints matching the filter, newest first.
func (s *CheckpointSaver) List(ctx context.Context, filter checkpoint.Filter) ([]*checkpoint.Checkpoint, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, traversal_id, superstep, state, metadata, timestamp, version
		FROM %s
		WHERE (? = '' OR traversal_id = ?)
		ORDER BY timestamp DESC
	`, s.tableName)
	rows, err := s.db.QueryContext(ctx, query, filter.TraversalID, filter.TraversalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	defer rows.Close()

	var out []*checkpoint.Checkpoint
	skipped := 0
	for rows.Next() {
		cp, err := s.scan(rows.Scan)
		if err != nil {
			return nil, err
		}
		if filter.Since != nil && cp.Timestamp.Before(*filter.Since) {
			continue
		}
		if filter.Before != nil && !cp.Timestamp.Before(*filter.Before) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, cp)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, rows.Err()
}

// Delete removes a checkpoint by ID.
func (s *CheckpointSaver) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.tableName)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete checkpoint: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return checkpoint.ErrCheckpointNotFound
	}
	return nil
}

func (s *CheckpointSaver) scan(scan func(dest ...interface{}) error) (*checkpoint.Checkpoint, error) {
	var cp checkpoint.Checkpoint
	var data []byte
	var metadataJSON string
	var ts int64
	if err := scan(&cp.ID, &cp.TraversalID, &cp.Superstep, &data, &metadataJSON, &ts, &cp.Version); err != nil {
		return nil, err
	}
	var st state
	if err := s.serializer.Deserialize(data, &st); err != nil {
		return nil, fmt.Errorf("failed to deserialize checkpoint state: %w", err)
	}
	cp.Frontier = st.Frontier
	cp.SideEffects = st.SideEffects
	if err := json.Unmarshal([]byte(metadataJSON), &cp.Metadata); err != nil {
		return nil, fmt.Errorf("failed to deserialize metadata: %w", err)
	}
	cp.Timestamp = time.Unix(0, ts).UTC()
	return &cp, nil
}
