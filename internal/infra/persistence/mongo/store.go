// Package mongo provides a MongoDB-backed table store. Each catalog table is
// a collection and the row id is stored as the document _id.
package mongo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aisumo/internal/schema"
	"aisumo/pkg/domain"
)

var _ domain.TableStore = (*Store)(nil)

// DefaultDatabase is used when no database name is configured.
const DefaultDatabase = "aisumo"

// Store maps table operations onto collection operations.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	nowFn  func() time.Time
	newID  func() string
}

// NewStore connects to uri, verifies the connection and ensures the unique
// indexes on natural keys.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	s := &Store{
		client: client,
		db:     client.Database(database),
		nowFn:  func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	for _, t := range schema.All() {
		for _, key := range t.NaturalKeys {
			model := mongo.IndexModel{
				Keys:    bson.D{{Key: key, Value: 1}},
				Options: options.Index().SetUnique(true),
			}
			if _, err := s.db.Collection(t.Name).Indexes().CreateOne(ctx, model); err != nil {
				return fmt.Errorf("create %s.%s index: %w", t.Name, key, err)
			}
		}
	}
	return nil
}

// Database exposes the underlying database for integration testing hooks.
func (s *Store) Database() *mongo.Database { return s.db }

// Select reads the documents of table.
func (s *Store) Select(ctx context.Context, table string, q domain.Query) ([]domain.Row, error) {
	desc, err := schema.Lookup(table)
	if err != nil {
		return nil, err
	}
	opts, err := findOptions(desc, q)
	if err != nil {
		return nil, err
	}
	cur, err := s.db.Collection(table).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", table, err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []domain.Row
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", table, err)
		}
		out = append(out, fromDocument(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

// Insert writes rows, assigning ids where missing.
func (s *Store) Insert(ctx context.Context, table string, rows ...domain.Row) error {
	desc, err := schema.Lookup(table)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	now := s.nowFn()
	docs := make([]any, 0, len(rows))
	for _, row := range rows {
		if err := desc.CheckColumns(row); err != nil {
			return err
		}
		doc, err := toDocument(desc, row)
		if err != nil {
			return err
		}
		if id, _ := doc["_id"].(string); id == "" {
			doc["_id"] = s.newID()
		}
		doc["created_at"] = now
		doc["updated_at"] = now
		docs = append(docs, doc)
	}
	if _, err := s.db.Collection(table).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// Upsert updates the document matching conflictKey or inserts a new one.
func (s *Store) Upsert(ctx context.Context, table, conflictKey string, rows ...domain.Row) error {
	desc, err := schema.Lookup(table)
	if err != nil {
		return err
	}
	if !desc.IsConflictKey(conflictKey) {
		return fmt.Errorf("upsert %s: %q is not a unique column", table, conflictKey)
	}
	now := s.nowFn()
	for i, row := range rows {
		if err := desc.CheckColumns(row); err != nil {
			return err
		}
		key, ok := row[conflictKey]
		if !ok || key == nil || key == "" {
			return fmt.Errorf("upsert %s: row %d has no %s", table, i, conflictKey)
		}
		doc, err := toDocument(desc, row)
		if err != nil {
			return err
		}
		filterKey := conflictKey
		if filterKey == "id" {
			filterKey = "_id"
		}
		id, _ := doc["_id"].(string)
		if id == "" {
			id = s.newID()
		}
		set := bson.M{"updated_at": now}
		for k, v := range doc {
			if k == "_id" || k == "created_at" || k == "updated_at" {
				continue
			}
			set[k] = v
		}
		update := bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"_id": id, "created_at": now},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := s.db.Collection(table).UpdateOne(ctx, bson.M{filterKey: key}, update, opts); err != nil {
			return fmt.Errorf("upsert %s: %w", table, err)
		}
	}
	return nil
}

// Update sets the patched fields of the document with id.
func (s *Store) Update(ctx context.Context, table, id string, patch domain.Row) error {
	desc, err := schema.Lookup(table)
	if err != nil {
		return err
	}
	if err := desc.CheckColumns(patch); err != nil {
		return err
	}
	doc, err := toDocument(desc, patch)
	if err != nil {
		return err
	}
	delete(doc, "_id")
	delete(doc, "created_at")
	doc["updated_at"] = s.nowFn()
	if _, err := s.db.Collection(table).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": doc}); err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

// Delete removes the document with id.
func (s *Store) Delete(ctx context.Context, table, id string) error {
	if _, err := schema.Lookup(table); err != nil {
		return err
	}
	if _, err := s.db.Collection(table).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func findOptions(desc schema.Table, q domain.Query) (*options.FindOptions, error) {
	opts := options.Find()
	if len(q.Columns) > 0 {
		proj := bson.M{}
		includesID := false
		for _, c := range q.Columns {
			if _, ok := desc.Column(c); !ok {
				return nil, schema.ErrUnknownColumn{Table: desc.Name, Name: c}
			}
			if c == "id" {
				includesID = true
				continue
			}
			proj[c] = 1
		}
		if !includesID {
			proj["_id"] = 0
		}
		opts.SetProjection(proj)
	}
	order := q.OrderBy
	if order == "" {
		order = desc.DefaultOrder
	}
	if order != "" {
		if _, ok := desc.Column(order); !ok {
			return nil, schema.ErrUnknownColumn{Table: desc.Name, Name: order}
		}
		if order == "id" {
			order = "_id"
		}
		opts.SetSort(bson.D{{Key: order, Value: 1}})
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return opts, nil
}

// toDocument renames id to _id. List columns go through their JSON form so
// nested values keep their JSON field names.
func toDocument(desc schema.Table, row domain.Row) (bson.M, error) {
	doc := make(bson.M, len(row))
	for k, v := range row {
		col, _ := desc.Column(k)
		if col.Kind == schema.KindJSON && v != nil {
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("encode %s.%s: %w", desc.Name, k, err)
			}
			var generic any
			if err := json.Unmarshal(raw, &generic); err != nil {
				return nil, fmt.Errorf("encode %s.%s: %w", desc.Name, k, err)
			}
			v = generic
		}
		if k == "id" {
			k = "_id"
		}
		doc[k] = v
	}
	return doc, nil
}

func fromDocument(doc bson.M) domain.Row {
	row := make(domain.Row, len(doc))
	for k, v := range doc {
		if k == "_id" {
			k = "id"
		}
		row[k] = normalize(v)
	}
	return row
}

// normalize converts BSON driver types to the plain Go values the row mapper
// expects.
func normalize(v any) any {
	switch val := v.(type) {
	case primitive.A:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = normalize(inner)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = normalize(inner)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.ObjectID:
		return val.Hex()
	case int32:
		return int(val)
	case int64:
		return int(val)
	default:
		return v
	}
}

