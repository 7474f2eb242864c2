package dto

// Data Transfer Objects for authentication requests and responses

import "eduground/internal/httpapi/models"

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest: payload for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest: payload for rotating the token pair
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// TokenPairResponse: access and refresh tokens after register/refresh
type TokenPairResponse struct {
	Message string `json:"message"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LoginResponse: token pair plus a summary of the authenticated user
type LoginResponse struct {
	Message string      `json:"message"`
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    UserSummary `json:"user"`
}

// UserSummary: public identity fields of a user
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// FromModelToUserSummary converts a User model to UserSummary DTO
func FromModelToUserSummary(user *models.User) UserSummary {
	return UserSummary{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}
