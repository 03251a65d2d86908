package dto

import "coursehub/internal/model"

// UserResponseDTO is the public projection of a user embedded in other responses
type UserResponseDTO struct {
	UserID   string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func ToUserResponse(u *model.User) *UserResponseDTO {
	if u == nil {
		return nil
	}
	return &UserResponseDTO{
		UserID:   u.UserID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
