// internal/adapters/db/document_store.go
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/warehouse-be/internal/core/ports"
)

const documentsTable = "documents"

// DocumentStore keeps every collection in one JSONB table keyed by
// (collection, id)
type DocumentStore struct {
	db     *Database
	psql   squirrel.StatementBuilderType
	logger *slog.Logger
}

var _ ports.DocumentStore = (*DocumentStore)(nil)

// NewDocumentStore creates a Postgres-backed document store
func NewDocumentStore(db *Database, logger *slog.Logger) *DocumentStore {
	return &DocumentStore{
		db:     db,
		psql:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		logger: logger.With(slog.String("component", "document_store")),
	}
}

// GetAll returns every document of a collection ordered by id
func (s *DocumentStore) GetAll(ctx context.Context, collection string) ([]ports.Document, error) {
	query, args, err := s.psql.
		Select("id", "data").
		From(documentsTable).
		Where(squirrel.Eq{"collection": collection}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	docs := make([]ports.Document, 0)
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan %s document: %w", collection, err)
		}
		doc, err := decodeData(id, data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", collection, err)
	}

	return docs, nil
}

// GetOne returns the document, or nil if it does not exist
func (s *DocumentStore) GetOne(ctx context.Context, collection, id string) (ports.Document, error) {
	query, args, err := s.psql.
		Select("data").
		From(documentsTable).
		Where(squirrel.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var data []byte
	if err := s.db.QueryRow(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return decodeData(id, data)
}

// SetOne creates or replaces a document
func (s *DocumentStore) SetOne(ctx context.Context, collection, id string, fields ports.Document) error {
	return s.BatchWrite(ctx, []ports.WriteOp{{Kind: ports.WriteSet, Collection: collection, ID: id, Fields: fields}})
}

// UpdateOne merges patch.Set into the stored document and drops patch.Unset
func (s *DocumentStore) UpdateOne(ctx context.Context, collection, id string, patch ports.Patch) error {
	return s.BatchWrite(ctx, []ports.WriteOp{{
		Kind:       ports.WriteUpdate,
		Collection: collection,
		ID:         id,
		Fields:     patch.Set,
		Unset:      patch.Unset,
	}})
}

// DeleteOne removes a document
func (s *DocumentStore) DeleteOne(ctx context.Context, collection, id string) error {
	return s.BatchWrite(ctx, []ports.WriteOp{{Kind: ports.WriteDelete, Collection: collection, ID: id}})
}

// BatchWrite sends all ops in one pgx batch inside a transaction
func (s *DocumentStore) BatchWrite(ctx context.Context, ops []ports.WriteOp) error {
	if len(ops) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, op := range ops {
		query, args, err := s.buildWrite(op)
		if err != nil {
			return err
		}
		batch.Queue(query, args...)
	}

	err := s.db.Transaction(ctx, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		for _, op := range ops {
			tag, err := results.Exec()
			if err != nil {
				results.Close()
				return fmt.Errorf("failed to %s %s/%s: %w", op.Kind, op.Collection, op.ID, err)
			}
			if op.Kind != ports.WriteSet && tag.RowsAffected() == 0 {
				results.Close()
				return fmt.Errorf("%w: %s/%s", ports.ErrDocumentNotFound, op.Collection, op.ID)
			}
		}
		return results.Close()
	})
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "batch committed", slog.Int("ops", len(ops)))
	return nil
}

// Ping verifies database connectivity
func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Health reports connection pool statistics
func (s *DocumentStore) Health(ctx context.Context) map[string]any {
	return s.db.Health(ctx)
}

func (s *DocumentStore) buildWrite(op ports.WriteOp) (string, []any, error) {
	var (
		query string
		args  []any
		err   error
	)

	switch op.Kind {
	case ports.WriteSet:
		data, encErr := encodeData(op.Fields)
		if encErr != nil {
			return "", nil, encErr
		}
		query, args, err = s.psql.
			Insert(documentsTable).
			Columns("collection", "id", "data").
			Values(op.Collection, op.ID, data).
			Suffix("ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()").
			ToSql()

	case ports.WriteUpdate:
		data, encErr := encodeData(op.Fields)
		if encErr != nil {
			return "", nil, encErr
		}
		unset := op.Unset
		if unset == nil {
			// a NULL key list would null out the whole document
			unset = []string{}
		}
		query, args, err = s.psql.
			Update(documentsTable).
			Set("data", squirrel.Expr("(data || ?::jsonb) - ?::text[]", data, unset)).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"collection": op.Collection, "id": op.ID}).
			ToSql()

	case ports.WriteDelete:
		query, args, err = s.psql.
			Delete(documentsTable).
			Where(squirrel.Eq{"collection": op.Collection, "id": op.ID}).
			ToSql()

	default:
		return "", nil, fmt.Errorf("unknown write kind %q", op.Kind)
	}

	if err != nil {
		return "", nil, fmt.Errorf("failed to build %s query: %w", op.Kind, err)
	}
	return query, args, nil
}

// encodeData marshals fields without the id, which lives in its own column
func encodeData(fields ports.Document) ([]byte, error) {
	payload := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "id" {
			continue
		}
		payload[k] = v
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

func decodeData(id string, data []byte) (ports.Document, error) {
	doc := ports.Document{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
		}
	}
	doc["id"] = id
	return doc, nil
}
