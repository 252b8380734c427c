package dto

import "github.com/teamtask/teamtask-server/internal/models"

// ProjectDTO represents a project in list responses
type ProjectDTO struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

// ProjectDetailDTO represents a project with owner, members, and tasks
type ProjectDetailDTO struct {
	ID    uint64    `json:"id"`
	Title string    `json:"title"`
	Owner UserDTO   `json:"owner"`
	Users []UserDTO `json:"users"`
	Tasks []TaskDTO `json:"tasks"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:    project.ID,
		Title: project.Title,
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}

// ToProjectDetailDTO converts a project with loaded relations to the
// detail shape. The users list is the membership set, not the owner.
func ToProjectDetailDTO(project models.Project) ProjectDetailDTO {
	users := make([]UserDTO, len(project.Members))
	for i, m := range project.Members {
		users[i] = ToUserDTO(m.User)
	}

	tasks := make([]TaskDTO, len(project.Tasks))
	for i, t := range project.Tasks {
		tasks[i] = ToTaskDTO(t)
	}

	return ProjectDetailDTO{
		ID:    project.ID,
		Title: project.Title,
		Owner: ToUserDTO(project.Owner),
		Users: users,
		Tasks: tasks,
	}
}
