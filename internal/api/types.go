// Package api defines the JSON envelopes shared by every HTTP endpoint.
package api

import "time"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// User is the public view of a user record. It never carries the password hash.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserResponse is returned by GET /users/me.
type UserResponse struct {
	Success bool `json:"success"`
	Data    User `json:"data"`
}

// DataResponse wraps any successful read payload.
type DataResponse[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
