package dto

import "time"

// RegisterRequest entrada para registro.
type RegisterRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Role        string `json:"role" validate:"omitempty,max=20"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest cambios de un administrador sobre otro usuario; solo se aplican los campos presentes.
type UpdateUserRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	PhoneNumber *string `json:"phoneNumber"`
	Role        *string `json:"role" validate:"omitempty,max=20"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
}

// UpdateProfileRequest cambios del propio usuario; el rol no se puede cambiar aquí.
type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	PhoneNumber *string `json:"phoneNumber"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
}

// UserDTO salida de un usuario (sin password).
type UserDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserResponse respuesta de registro.
type UserResponse struct {
	Envelope
	User *UserDTO `json:"user"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Envelope
	Users []UserDTO `json:"users"`
	PageResponse
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Envelope
	Token          string `json:"token"`
	Role           string `json:"role"`
	ExpirationTime string `json:"expirationTime"`
}
