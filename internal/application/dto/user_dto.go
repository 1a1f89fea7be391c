package dto

import "time"

// RegisterRequest entrada para registro de un tenant nuevo.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	LastName string  `json:"lastName" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Cel      *string `json:"cel"`
	Password string  `json:"password" validate:"required,min=8,max=16"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Cel       *string   `json:"cel,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	Subdomain string    `json:"subdomain"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
