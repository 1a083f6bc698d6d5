// internal/adapters/memory/document_store.go
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/ammerola/warehouse-be/internal/core/ports"
)

// DocumentStore is an in-process document store for tests and local runs
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]ports.Document
	writes      int
	logger      *slog.Logger
}

var _ ports.DocumentStore = (*DocumentStore)(nil)

// NewDocumentStore creates an empty store
func NewDocumentStore(logger *slog.Logger) *DocumentStore {
	return &DocumentStore{
		collections: make(map[string]map[string]ports.Document),
		logger:      logger.With(slog.String("component", "memory_store")),
	}
}

// GetAll returns every document of a collection ordered by id
func (s *DocumentStore) GetAll(ctx context.Context, collection string) ([]ports.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.collections[collection]
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]ports.Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, withID(docs[id], id))
	}
	return out, nil
}

// GetOne returns a copy of the document, or nil if absent
func (s *DocumentStore) GetOne(ctx context.Context, collection, id string) (ports.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, nil
	}
	return withID(doc, id), nil
}

// SetOne replaces the document
func (s *DocumentStore) SetOne(ctx context.Context, collection, id string, fields ports.Document) error {
	return s.BatchWrite(ctx, []ports.WriteOp{{Kind: ports.WriteSet, Collection: collection, ID: id, Fields: fields}})
}

// UpdateOne merges the patch into an existing document
func (s *DocumentStore) UpdateOne(ctx context.Context, collection, id string, patch ports.Patch) error {
	return s.BatchWrite(ctx, []ports.WriteOp{{
		Kind: ports.WriteUpdate, Collection: collection, ID: id, Fields: patch.Set, Unset: patch.Unset,
	}})
}

// DeleteOne removes the document
func (s *DocumentStore) DeleteOne(ctx context.Context, collection, id string) error {
	return s.BatchWrite(ctx, []ports.WriteOp{{Kind: ports.WriteDelete, Collection: collection, ID: id}})
}

// BatchWrite validates every op before applying any of them
func (s *DocumentStore) BatchWrite(ctx context.Context, ops []ports.WriteOp) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ops may target documents created or deleted earlier in the same batch.
	pending := make(map[string]bool)
	for _, op := range ops {
		key := op.Collection + "/" + op.ID
		exists, tracked := pending[key]
		if !tracked {
			_, exists = s.collections[op.Collection][op.ID]
		}
		switch op.Kind {
		case ports.WriteSet:
			pending[key] = true
		case ports.WriteUpdate:
			if !exists {
				return fmt.Errorf("update %s: %w", key, ports.ErrDocumentNotFound)
			}
			pending[key] = true
		case ports.WriteDelete:
			if !exists {
				return fmt.Errorf("delete %s: %w", key, ports.ErrDocumentNotFound)
			}
			pending[key] = false
		default:
			return fmt.Errorf("unknown write op %q", op.Kind)
		}
	}

	for _, op := range ops {
		coll := s.collection(op.Collection)
		switch op.Kind {
		case ports.WriteSet:
			coll[op.ID] = stripID(cloneDocument(op.Fields))
		case ports.WriteUpdate:
			doc := coll[op.ID]
			for k, v := range op.Fields {
				doc[k] = cloneValue(v)
			}
			for _, k := range op.Unset {
				delete(doc, k)
			}
			delete(doc, "id")
		case ports.WriteDelete:
			delete(coll, op.ID)
		}
	}
	s.writes++

	s.logger.DebugContext(ctx, "batch committed", slog.Int("ops", len(ops)))
	return nil
}

// Writes returns the number of committed write calls
func (s *DocumentStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Ping always succeeds
func (s *DocumentStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *DocumentStore) collection(name string) map[string]ports.Document {
	coll, ok := s.collections[name]
	if !ok {
		coll = make(map[string]ports.Document)
		s.collections[name] = coll
	}
	return coll
}

func withID(doc ports.Document, id string) ports.Document {
	out := cloneDocument(doc)
	out["id"] = id
	return out
}

func stripID(doc ports.Document) ports.Document {
	delete(doc, "id")
	return doc
}

func cloneDocument(doc ports.Document) ports.Document {
	out := make(ports.Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(cloneDocument(t))
	case ports.Document:
		return cloneDocument(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
