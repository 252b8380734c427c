package dto

import "github.com/teamtask/teamtask-server/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// UserProfileDTO is the full profile returned to the authenticated user
type UserProfileDTO struct {
	ID            uint64       `json:"id"`
	Username      string       `json:"username"`
	Projects      []ProjectDTO `json:"projects"`
	OwnedProjects []ProjectDTO `json:"owned_projects"`
	Logs          []TaskLogDTO `json:"logs"`
}

// TokenDTO is the response of the token endpoint
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

// ToUserProfileDTO converts a user with loaded relations to the profile
// shape. Member projects come from the membership rows.
func ToUserProfileDTO(user models.User) UserProfileDTO {
	projects := make([]ProjectDTO, len(user.Memberships))
	for i, m := range user.Memberships {
		projects[i] = ToProjectDTO(m.Project)
	}

	owned := make([]ProjectDTO, len(user.OwnedProjects))
	for i, p := range user.OwnedProjects {
		owned[i] = ToProjectDTO(p)
	}

	logs := make([]TaskLogDTO, len(user.Logs))
	for i, l := range user.Logs {
		logs[i] = ToTaskLogDTO(l)
	}

	return UserProfileDTO{
		ID:            user.ID,
		Username:      user.Username,
		Projects:      projects,
		OwnedProjects: owned,
		Logs:          logs,
	}
}
