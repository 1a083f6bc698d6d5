// internal/adapters/mongo/document_store.go
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ammerola/warehouse-be/internal/core/ports"
)

// Connect opens a client and verifies it with a ping
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(timeoutCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(timeoutCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// DocumentStore maps each collection name onto a MongoDB collection with the
// document id as _id
type DocumentStore struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

var _ ports.DocumentStore = (*DocumentStore)(nil)

// NewDocumentStore creates a MongoDB-backed document store
func NewDocumentStore(client *mongo.Client, database string, logger *slog.Logger) *DocumentStore {
	return &DocumentStore{
		client: client,
		db:     client.Database(database),
		logger: logger.With(slog.String("component", "mongo_store")),
	}
}

// GetAll returns every document of a collection ordered by id
func (s *DocumentStore) GetAll(ctx context.Context, collection string) ([]ports.Document, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
	}

	docs := make([]ports.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, toDocument(m))
	}
	return docs, nil
}

// GetOne returns the document, or nil if it does not exist
func (s *DocumentStore) GetOne(ctx context.Context, collection, id string) (ports.Document, error) {
	var m bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return toDocument(m), nil
}

// SetOne creates or replaces a document
func (s *DocumentStore) SetOne(ctx context.Context, collection, id string, fields ports.Document) error {
	return s.apply(ctx, ports.WriteOp{Kind: ports.WriteSet, Collection: collection, ID: id, Fields: fields})
}

// UpdateOne merges patch.Set into the stored document and drops patch.Unset
func (s *DocumentStore) UpdateOne(ctx context.Context, collection, id string, patch ports.Patch) error {
	return s.apply(ctx, ports.WriteOp{
		Kind:       ports.WriteUpdate,
		Collection: collection,
		ID:         id,
		Fields:     patch.Set,
		Unset:      patch.Unset,
	})
}

// DeleteOne removes a document
func (s *DocumentStore) DeleteOne(ctx context.Context, collection, id string) error {
	return s.apply(ctx, ports.WriteOp{Kind: ports.WriteDelete, Collection: collection, ID: id})
}

// BatchWrite applies all ops in one multi-document transaction. Transactions
// need a replica set or sharded cluster.
func (s *DocumentStore) BatchWrite(ctx context.Context, ops []ports.WriteOp) error {
	if len(ops) == 0 {
		return nil
	}
	if len(ops) == 1 {
		return s.apply(ctx, ops[0])
	}

	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, op := range ops {
			if err := s.apply(sc, op); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "batch committed", slog.Int("ops", len(ops)))
	return nil
}

// Ping verifies connectivity
func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *DocumentStore) apply(ctx context.Context, op ports.WriteOp) error {
	coll := s.db.Collection(op.Collection)
	filter := bson.M{"_id": op.ID}

	switch op.Kind {
	case ports.WriteSet:
		doc := bson.M{}
		for k, v := range op.Fields {
			if k != "id" {
				doc[k] = v
			}
		}
		doc["_id"] = op.ID
		if _, err := coll.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true)); err != nil {
			return fmt.Errorf("failed to set %s/%s: %w", op.Collection, op.ID, err)
		}
		return nil

	case ports.WriteUpdate:
		update := buildUpdate(op.Fields, op.Unset)
		if len(update) == 0 {
			n, err := coll.CountDocuments(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to check %s/%s: %w", op.Collection, op.ID, err)
			}
			if n == 0 {
				return fmt.Errorf("%w: %s/%s", ports.ErrDocumentNotFound, op.Collection, op.ID)
			}
			return nil
		}
		res, err := coll.UpdateOne(ctx, filter, update)
		if err != nil {
			return fmt.Errorf("failed to update %s/%s: %w", op.Collection, op.ID, err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("%w: %s/%s", ports.ErrDocumentNotFound, op.Collection, op.ID)
		}
		return nil

	case ports.WriteDelete:
		res, err := coll.DeleteOne(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to delete %s/%s: %w", op.Collection, op.ID, err)
		}
		if res.DeletedCount == 0 {
			return fmt.Errorf("%w: %s/%s", ports.ErrDocumentNotFound, op.Collection, op.ID)
		}
		return nil

	default:
		return fmt.Errorf("unknown write kind %q", op.Kind)
	}
}

// buildUpdate builds the $set/$unset document. MongoDB rejects empty
// operators, so they are only included when populated.
func buildUpdate(set ports.Document, unset []string) bson.M {
	update := bson.M{}

	fields := bson.M{}
	for k, v := range set {
		if k != "id" && k != "_id" {
			fields[k] = v
		}
	}
	if len(fields) > 0 {
		update["$set"] = fields
	}

	if len(unset) > 0 {
		keys := bson.M{}
		for _, k := range unset {
			keys[k] = ""
		}
		update["$unset"] = keys
	}
	return update
}

// toDocument converts driver types into plain Go values and renames _id
func toDocument(m bson.M) ports.Document {
	doc := make(ports.Document, len(m))
	for k, v := range m {
		if k == "_id" {
			doc["id"] = fmt.Sprint(v)
			continue
		}
		doc[k] = plain(v)
	}
	return doc
}

func plain(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plain(e)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plain(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	case int32:
		return int(t)
	case int64:
		return int(t)
	default:
		return v
	}
}
