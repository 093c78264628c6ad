package service

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/todosapp/todo-service/internal/core/domain"
	"github.com/todosapp/todo-service/internal/core/security"
)

var (
	testLogger = zerolog.Nop()
	testHasher = security.NewBcryptHasher(bcrypt.MinCost)
)

// ---------------------------------------------------------------------------
// In-memory user directory
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[int64]*domain.User
	nextID  int64
	lookups int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsernameOrEmail(_ context.Context, username, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username || u.Email == email })
}

func (r *stubUserRepo) FindByIDAndUsername(_ context.Context, id int64, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id && u.Username == username })
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

// ---------------------------------------------------------------------------
// In-memory todo repository
// ---------------------------------------------------------------------------

type stubTodoRepo struct {
	todos     map[int64]*domain.Todo
	nextID    int64
	createErr error
	creates   int
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{todos: make(map[int64]*domain.Todo)}
}

func (r *stubTodoRepo) Create(_ context.Context, t *domain.Todo) (*domain.Todo, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.creates++
	r.nextID++
	clone := *t
	clone.ID = r.nextID
	r.todos[clone.ID] = &clone
	out := clone
	return &out, nil
}

// FindByID mirrors the real query: ownerID 0 means unfiltered.
func (r *stubTodoRepo) FindByID(_ context.Context, id, ownerID int64) (*domain.Todo, error) {
	t, ok := r.todos[id]
	if !ok || (ownerID != 0 && t.OwnerID != ownerID) {
		return nil, domain.ErrTodoNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTodoRepo) List(_ context.Context, ownerID int64) ([]*domain.Todo, error) {
	out := []*domain.Todo{}
	for _, t := range r.todos {
		if ownerID != 0 && t.OwnerID != ownerID {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTodoRepo) Update(_ context.Context, t *domain.Todo) (*domain.Todo, error) {
	existing, ok := r.todos[t.ID]
	if !ok || existing.OwnerID != t.OwnerID {
		return nil, domain.ErrTodoNotFound
	}
	clone := *t
	r.todos[t.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTodoRepo) Delete(_ context.Context, id, ownerID int64) error {
	t, ok := r.todos[id]
	if !ok || (ownerID != 0 && t.OwnerID != ownerID) {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}
