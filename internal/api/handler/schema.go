package handler

import "github.com/todosapp/todo-service/internal/core/domain"

// errorResponse is the envelope the central error handler renders for every
// 4xx/5xx response.
type errorResponse struct {
	Detail string `json:"detail"`
}

// --- Auth ---

type registerRequest struct {
	Username  string `json:"username"   validate:"required,max=64"`
	Email     string `json:"email"      validate:"required,email"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name"  validate:"max=100"`
	Password  string `json:"password"`
	Role      string `json:"role"       validate:"omitempty,oneof=admin user"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// loginRequest is the OAuth2 password-grant form.
type loginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- User ---

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
	}
}

// --- Todos ---

type todoRequest struct {
	Title       string `json:"title"       validate:"min=3"`
	Description string `json:"description" validate:"min=3,max=100"`
	Priority    int    `json:"priority"    validate:"gte=1,lte=5"`
	Complete    bool   `json:"complete"`
}

type todoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
	OwnerID     int64  `json:"owner_id"`
}

func toTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Complete:    t.Complete,
		OwnerID:     t.OwnerID,
	}
}

func toTodoResponses(todos []*domain.Todo) []todoResponse {
	out := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoResponse(t))
	}
	return out
}
