package mongo

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/todosapp/todo-service/internal/core/domain"
)

func todoDoc(id, owner int64, title string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "description", Value: "Test Description"},
		{Key: "priority", Value: 3},
		{Key: "complete", Value: false},
		{Key: "owner_id", Value: owner},
		{Key: "created_at", Value: int64(1700000000)},
		{Key: "updated_at", Value: int64(1700000000)},
	}
}

func TestOwnedFilter(t *testing.T) {
	if f := ownedFilter(5, 0); len(f) != 1 || f["_id"] != int64(5) {
		t.Fatalf("admin filter must only match id: %v", f)
	}
	if f := ownedFilter(5, 2); f["owner_id"] != int64(2) {
		t.Fatalf("owner filter missing: %v", f)
	}
}

func TestTodoRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id", func(mt *mtest.T) {
		repo := NewTodoRepository(mt.DB)
		mt.AddMockResponses(counterResponse(7), mtest.CreateSuccessResponse())

		todo, err := repo.Create(context.Background(), &domain.Todo{Title: "Workout", Description: "Gym", Priority: 3, OwnerID: 1})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if todo.ID != 7 || todo.OwnerID != 1 {
			t.Fatalf("unexpected todo: %+v", todo)
		}
	})
}

func TestTodoRepository_FindAndList(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find owned", func(mt *mtest.T) {
		repo := NewTodoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.todos", mtest.FirstBatch, todoDoc(1, 1, "Test Todo")))

		todo, err := repo.FindByID(context.Background(), 1, 1)
		if err != nil {
			t.Fatalf("find returned error: %v", err)
		}
		if todo.Title != "Test Todo" || todo.Priority != 3 {
			t.Fatalf("unexpected todo: %+v", todo)
		}
	})

	mt.Run("find foreign looks missing", func(mt *mtest.T) {
		repo := NewTodoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.todos", mtest.FirstBatch))

		if _, err := repo.FindByID(context.Background(), 1, 2); !errors.Is(err, domain.ErrTodoNotFound) {
			t.Fatalf("expected ErrTodoNotFound, got %v", err)
		}
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewTodoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.todos", mtest.FirstBatch,
			todoDoc(1, 1, "Buy groceries"),
			todoDoc(2, 1, "Workout"),
		))

		todos, err := repo.List(context.Background(), 1)
		if err != nil {
			t.Fatalf("list returned error: %v", err)
		}
		if len(todos) != 2 || todos[1].Title != "Workout" {
			t.Fatalf("unexpected todos: %+v", todos)
		}
	})

	mt.Run("list empty", func(mt *mtest.T) {
		repo := NewTodoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.todos", mtest.FirstBatch))

		todos, err := repo.List(context.Background(), 0)
		if err != nil {
			t.Fatalf("list returned error: %v", err)
		}
		if todos == nil || len(todos) != 0 {
			t.Fatalf("expected empty non-nil slice, got %v", todos)
		}
	})
}

func TestTodoRepository_UpdateDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("update matched", func(mt *mtest.T) {
		repo := NewTodoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		todo, err := repo.Update(context.Background(), &domain.Todo{ID: 1, OwnerID: 1, Title: "New"})
		if err != nil {
			t.Fatalf("update returned error: %v", err)
		}
		if todo.Title != "New" {
			t.Fatalf("unexpected todo: %+v", todo)
		}
	})

	mt.Run("update unmatched", func(mt *mtest.T) {
		repo := NewTodoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		if _, err := repo.Update(context.Background(), &domain.Todo{ID: 1, OwnerID: 2}); !errors.Is(err, domain.ErrTodoNotFound) {
			t.Fatalf("expected ErrTodoNotFound, got %v", err)
		}
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewTodoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		if err := repo.Delete(context.Background(), 1, 0); err != nil {
			t.Fatalf("delete returned error: %v", err)
		}
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := NewTodoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		if err := repo.Delete(context.Background(), 42, 1); !errors.Is(err, domain.ErrTodoNotFound) {
			t.Fatalf("expected ErrTodoNotFound, got %v", err)
		}
	})
}
