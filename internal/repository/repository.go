package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/REFATBHUYAN/easydrop-api/internal/models"
	"github.com/lib/pq"
)

// Sentinel errors the handler layer maps to status codes.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// uniqueViolation is the Postgres error code for a unique constraint breach
const uniqueViolation = "23505"

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts a new user. Username uniqueness relies on the
// database constraint; a duplicate yields ErrConflict.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash).
		Scan(&user.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByUsername retrieves a user by username
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, password
		FROM users
		WHERE username = $1`
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateTodo inserts a new todo owned by todo.UserID
func (r *Repository) CreateTodo(ctx context.Context, todo *models.Todo) error {
	query := `
		INSERT INTO todos (title, description, user_id)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, todo.Title, todo.Description, todo.UserID).
		Scan(&todo.ID)
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	return nil
}

// ListTodos returns every todo owned by userID
func (r *Repository) ListTodos(ctx context.Context, userID int64) ([]models.Todo, error) {
	query := `
		SELECT id, title, description, user_id
		FROM todos
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read todos: %w", err)
	}
	return todos, nil
}

// GetTodo retrieves a single todo scoped to its owner. A todo belonging
// to another user is indistinguishable from a missing one.
func (r *Repository) GetTodo(ctx context.Context, userID, todoID int64) (*models.Todo, error) {
	todo := &models.Todo{}
	query := `
		SELECT id, title, description, user_id
		FROM todos
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, todoID, userID).
		Scan(&todo.ID, &todo.Title, &todo.Description, &todo.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

// UpdateTodo overwrites title and description of an owned todo.
// The affected-row count decides between success and ErrNotFound.
func (r *Repository) UpdateTodo(ctx context.Context, userID, todoID int64, title, description string) error {
	query := `
		UPDATE todos
		SET title = $1, description = $2
		WHERE id = $3 AND user_id = $4`
	res, err := r.db.ExecContext(ctx, query, title, description, todoID, userID)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTodo removes an owned todo, using the affected-row count the
// same way as UpdateTodo.
func (r *Repository) DeleteTodo(ctx context.Context, userID, todoID int64) error {
	query := `
		DELETE FROM todos
		WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, todoID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
