package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/todosapp/todo-service/internal/core/domain"
)

const todosCollection = "todos"

type TodoRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{
		col:      db.Collection(todosCollection),
		counters: db.Collection(countersCollection),
	}
}

type mongoTodo struct {
	ID          int64  `bson:"_id"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	Priority    int    `bson:"priority"`
	Complete    bool   `bson:"complete"`
	OwnerID     int64  `bson:"owner_id"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

func (mt *mongoTodo) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          mt.ID,
		Title:       mt.Title,
		Description: mt.Description,
		Priority:    mt.Priority,
		Complete:    mt.Complete,
		OwnerID:     mt.OwnerID,
		CreatedAt:   unixToTime(mt.CreatedAt),
		UpdatedAt:   unixToTime(mt.UpdatedAt),
	}
}

func fromDomainTodo(t *domain.Todo) mongoTodo {
	return mongoTodo{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Complete:    t.Complete,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt.Unix(),
		UpdatedAt:   t.UpdatedAt.Unix(),
	}
}

// ownedFilter scopes a query to ownerID unless it is zero.
func ownedFilter(id, ownerID int64) bson.M {
	filter := bson.M{"_id": id}
	if ownerID != 0 {
		filter["owner_id"] = ownerID
	}
	return filter
}

// Create inserts a new todo document under the next todo id.
func (r *TodoRepository) Create(ctx context.Context, t *domain.Todo) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.counters, todosCollection)
	if err != nil {
		return nil, err
	}

	doc := fromDomainTodo(t)
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID retrieves a todo. When ownerID is non-zero a todo owned by
// someone else is reported exactly like a missing one.
func (r *TodoRepository) FindByID(ctx context.Context, id, ownerID int64) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoTodo
	if err := r.col.FindOne(ctx, ownedFilter(id, ownerID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns todos ordered by id, restricted to ownerID when non-zero.
func (r *TodoRepository) List(ctx context.Context, ownerID int64) ([]*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if ownerID != 0 {
		filter["owner_id"] = ownerID
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoTodo
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}

	out := make([]*domain.Todo, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// Update rewrites the mutable fields of a todo owned by t.OwnerID.
func (r *TodoRepository) Update(ctx context.Context, t *domain.Todo) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, ownedFilter(t.ID, t.OwnerID), bson.M{"$set": bson.M{
		"title":       t.Title,
		"description": t.Description,
		"priority":    t.Priority,
		"complete":    t.Complete,
		"updated_at":  t.UpdatedAt.Unix(),
	}})
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTodoNotFound
	}
	out := *t
	return &out, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id, ownerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, ownedFilter(id, ownerID))
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the todos collection.
func (r *TodoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "owner_id", Value: 1}}})
	return err
}
