package models

// RegisterRequest is the payload for POST /api/auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the payload for POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TodoRequest is the payload for creating or updating a todo
type TodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
