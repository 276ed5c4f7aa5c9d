// Package postgres provides a checkpoint saver backed by PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/whitewum/tinkerpop/internal/core/checkpoint"
	"github.com/whitewum/tinkerpop/pkg/serialization"
)

// state is the serialized payload column: the traverser frontier plus the
// side-effect snapshot.
type state struct {
	Frontier    [][]byte               `msgpack:"frontier"`
	SideEffects map[string]interface{} `msgpack:"side_effects,omitempty"`
}

// CheckpointSaver implements checkpoint.Saver for PostgreSQL.
type CheckpointSaver struct {
	pool       *pgxpool.Pool
	serializer *serialization.Serializer
	tableName  string
}

// NewCheckpointSaver creates a PostgreSQL checkpoint saver. A nil
// serializer defaults to the migration serializer.
func NewCheckpointSaver(pool *pgxpool.Pool, serializer *serialization.Serializer) *CheckpointSaver {
	if serializer == nil {
		serializer = serialization.Default()
	}
	return &CheckpointSaver{pool: pool, serializer: serializer, tableName: "traversal_checkpoints"}
}

var _ checkpoint.Saver = (*CheckpointSaver)(nil)

// Schema returns the DDL for the backing table.
func (s *CheckpointSaver) Schema() string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			traversal_id TEXT NOT NULL,
			superstep INTEGER NOT NULL,
			state BYTEA NOT NULL,
			metadata JSONB NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			version TEXT NOT NULL
		)`, s.tableName)
}

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
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			superstep = EXCLUDED.superstep,
			state = EXCLUDED.state,
			metadata = EXCLUDED.metadata,
			timestamp = EXCLUDED.timestamp
	`, s.tableName)

	_, err = s.pool.Exec(ctx, query,
		cp.ID, cp.TraversalID, cp.Superstep, data, metadataJSON, cp.Timestamp, cp.Version)
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
		FROM %s
		WHERE id = $1
	`, s.tableName)

	var cp checkpoint.Checkpoint
	var data, metadataJSON []byte
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&cp.ID, &cp.TraversalID, &cp.Superstep, &data, &metadataJSON, &cp.Timestamp, &cp.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, checkpoint.ErrCheckpointNotFound
		}
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	var st state
	if err := s.serializer.Deserialize(data, &st); err != nil {
		return nil, fmt.Errorf("failed to deserialize checkpoint state: %w", err)
	}
	cp.Frontier = st.Frontier
	cp.SideEffects = st.SideEffects
	if err := json.Unmarshal(metadataJSON, &cp.Metadata); err != nil {
		return nil, fmt.Errorf("failed to deserialize metadata: %w", err)
	}
	return &cp, nil
}

// List returns checkpoints matching the filter, newest first.
func (s *CheckpointSaver) List(ctx context.Context, filter checkpoint.Filter) ([]*checkpoint.Checkpoint, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, traversal_id, superstep, state, metadata, timestamp, version
		FROM %s
		WHERE ($1 = '' OR traversal_id = $1)
		  AND ($2::timestamptz IS NULL OR timestamp >= $2)
		  AND ($3::timestamptz IS NULL OR timestamp < $3)
		ORDER BY timestamp DESC
		OFFSET $4
	`, s.tableName)
	args := []interface{}{filter.TraversalID, filter.Since, filter.Before, filter.Offset}
	if filter.Limit > 0 {
		query += " LIMIT $5"
		args = append(args, filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	defer rows.Close()

	var out []*checkpoint.Checkpoint
	for rows.Next() {
		var cp checkpoint.Checkpoint
		var data, metadataJSON []byte
		if err := rows.Scan(&cp.ID, &cp.TraversalID, &cp.Superstep, &data, &metadataJSON, &cp.Timestamp, &cp.Version); err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint: %w", err)
		}
		var st state
		if err := s.serializer.Deserialize(data, &st); err != nil {
			return nil, fmt.Errorf("failed to deserialize checkpoint state: %w", err)
		}
		cp.Frontier = st.Frontier
		cp.SideEffects = st.SideEffects
		if err := json.Unmarshal(metadataJSON, &cp.Metadata); err != nil {
			return nil, fmt.Errorf("failed to deserialize metadata: %w", err)
		}
		out = append(out, &cp)
	}
	return out, rows.Err()
}

// Delete removes a checkpoint by ID.
func (s *CheckpointSaver) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.tableName)
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete checkpoint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return checkpoint.ErrCheckpointNotFound
	}
	return nil
}
