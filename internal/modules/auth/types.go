package auth

import "github.com/terravista/estate-core/internal/models"

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword"     binding:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
