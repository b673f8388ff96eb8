package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/REFATBHUYAN/easydrop-api/internal/middleware"
	"github.com/REFATBHUYAN/easydrop-api/internal/models"
	"github.com/REFATBHUYAN/easydrop-api/internal/repository"
	"github.com/REFATBHUYAN/easydrop-api/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handler maps HTTP requests onto service operations
type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// internalError logs the cause server-side and returns a generic message
func (h *Handler) internalError(w http.ResponseWriter, err error) {
	h.log.Errorf("Internal error: %v", err)
	errorJSON(w, http.StatusInternalServerError, "internal server error")
}

// Register handles POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.svc.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrEmptyFields):
		errorJSON(w, http.StatusBadRequest, "username and password are required")
	case errors.Is(err, repository.ErrConflict):
		errorJSON(w, http.StatusConflict, "username already exists")
	case err != nil:
		h.internalError(w, err)
	default:
		writeJSON(w, http.StatusCreated, map[string]any{"message": "user registered", "id": id})
	}
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrEmptyFields):
		errorJSON(w, http.StatusBadRequest, "username and password are required")
	case errors.Is(err, service.ErrInvalidCredentials):
		errorJSON(w, http.StatusUnauthorized, "invalid username or password")
	case err != nil:
		h.internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so there
// is nothing to revoke; the token stays valid until it expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// CreateTodo handles POST /api/todos
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.svc.CreateTodo(r.Context(), userID, req.Title, req.Description)
	switch {
	case errors.Is(err, service.ErrEmptyFields):
		errorJSON(w, http.StatusBadRequest, "title and description are required")
	case err != nil:
		h.internalError(w, err)
	default:
		writeJSON(w, http.StatusCreated, map[string]any{"message": "todo created", "id": id})
	}
}

// ListTodos handles GET /api/todos
func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	todos, err := h.svc.ListTodos(r.Context(), userID)
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

// GetTodo handles GET /api/todos/{id}
func (h *Handler) GetTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	todoID, ok := todoIDFromPath(r)
	if !ok {
		errorJSON(w, http.StatusNotFound, "todo not found")
		return
	}

	todo, err := h.svc.GetTodo(r.Context(), userID, todoID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		errorJSON(w, http.StatusNotFound, "todo not found")
	case err != nil:
		h.internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, todo)
	}
}

// UpdateTodo handles PUT /api/todos/{id}
func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	todoID, ok := todoIDFromPath(r)
	if !ok {
		errorJSON(w, http.StatusNotFound, "todo not found")
		return
	}

	var req models.TodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.svc.UpdateTodo(r.Context(), userID, todoID, req.Title, req.Description)
	switch {
	case errors.Is(err, service.ErrEmptyFields):
		errorJSON(w, http.StatusBadRequest, "title and description are required")
	case errors.Is(err, repository.ErrNotFound):
		errorJSON(w, http.StatusNotFound, "todo not found")
	case err != nil:
		h.internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "todo updated"})
	}
}

// DeleteTodo handles DELETE /api/todos/{id}
func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	todoID, ok := todoIDFromPath(r)
	if !ok {
		errorJSON(w, http.StatusNotFound, "todo not found")
		return
	}

	err := h.svc.DeleteTodo(r.Context(), userID, todoID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		errorJSON(w, http.StatusNotFound, "todo not found")
	case err != nil:
		h.internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "todo deleted"})
	}
}

// todoIDFromPath parses the {id} path variable. A non-numeric id is
// treated the same as a missing record.
func todoIDFromPath(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
