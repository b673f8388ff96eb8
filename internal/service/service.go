package service

import (
	"context"
	"errors"

	"github.com/REFATBHUYAN/easydrop-api/internal/auth"
	"github.com/REFATBHUYAN/easydrop-api/internal/models"
	"github.com/REFATBHUYAN/easydrop-api/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmptyFields means a required request field is missing or blank
	ErrEmptyFields = errors.New("required fields are missing")
	// ErrInvalidCredentials covers unknown username and wrong password alike
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	tokens *auth.TokenManager
	log    *logrus.Logger
}

// NewService initializes a new service
func NewService(repo *repository.Repository, tokens *auth.TokenManager, log *logrus.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, log: log}
}

// Register creates a new user with a hashed password and returns its id
func (s *Service) Register(ctx context.Context, username, password string) (int64, error) {
	if username == "" || password == "" {
		return 0, ErrEmptyFields
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Errorf("Failed to hash password: %v", err)
		return 0, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return 0, err
	}

	s.log.Infof("User registered: %s", user.Username)
	return user.ID, nil
}

// Login authenticates a user and returns a signed bearer token
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrEmptyFields
	}

	user, err := s.repo.FindUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	tokenString, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.Errorf("Failed to sign token for user %d: %v", user.ID, err)
		return "", err
	}

	s.log.Infof("User logged in: %s", user.Username)
	return tokenString, nil
}

// CreateTodo inserts a todo for the authenticated user
func (s *Service) CreateTodo(ctx context.Context, userID int64, title, description string) (int64, error) {
	if title == "" || description == "" {
		return 0, ErrEmptyFields
	}

	todo := &models.Todo{
		Title:       title,
		Description: description,
		UserID:      userID,
	}
	if err := s.repo.CreateTodo(ctx, todo); err != nil {
		return 0, err
	}

	s.log.Infof("Todo %d created for user %d", todo.ID, userID)
	return todo.ID, nil
}

// ListTodos returns all todos owned by the authenticated user
func (s *Service) ListTodos(ctx context.Context, userID int64) ([]models.Todo, error) {
	return s.repo.ListTodos(ctx, userID)
}

// GetTodo returns a single owned todo
func (s *Service) GetTodo(ctx context.Context, userID, todoID int64) (*models.Todo, error) {
	return s.repo.GetTodo(ctx, userID, todoID)
}

// UpdateTodo overwrites title and description of an owned todo
func (s *Service) UpdateTodo(ctx context.Context, userID, todoID int64, title, description string) error {
	if title == "" || description == "" {
		return ErrEmptyFields
	}
	if err := s.repo.UpdateTodo(ctx, userID, todoID, title, description); err != nil {
		return err
	}
	s.log.Infof("Todo %d updated for user %d", todoID, userID)
	return nil
}

// DeleteTodo removes an owned todo
func (s *Service) DeleteTodo(ctx context.Context, userID, todoID int64) error {
	if err := s.repo.DeleteTodo(ctx, userID, todoID); err != nil {
		return err
	}
	s.log.Infof("Todo %d deleted for user %d", todoID, userID)
	return nil
}
