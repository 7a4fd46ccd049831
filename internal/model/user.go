package model

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes the two account types.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// User represents a registered account. The wire names follow the
// frontend contract (camelCase, "userType" for the role).
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Age          int       `json:"age"`
	Role         Role      `json:"userType"`
	AvatarURL    *string   `json:"profilePicture,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Age      int    `json:"age" binding:"required,gte=1,lte=120"`
	Role     string `json:"userType" binding:"required,oneof=student teacher"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the multipart form fields of a profile
// edit. All fields are optional; a password change requires the current
// password alongside the new one.
type UpdateProfileRequest struct {
	Name            string `form:"name" binding:"omitempty,min=3,max=30"`
	Email           string `form:"email" binding:"omitempty,email"`
	Age             int    `form:"age" binding:"omitempty,gte=1,lte=120"`
	CurrentPassword string `form:"currentPassword"`
	NewPassword     string `form:"newPassword" binding:"omitempty,min=6,max=128"`
}
