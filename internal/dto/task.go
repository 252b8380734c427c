package dto

import (
	"time"

	"github.com/teamtask/teamtask-server/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// TaskDetailDTO represents a task with its project and audit log
type TaskDetailDTO struct {
	ID          uint64       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Project     ProjectDTO   `json:"project"`
	Logs        []TaskLogDTO `json:"logs"`
}

// TaskLogDTO represents an audit log entry
type TaskLogDTO struct {
	ID        uint64    `json:"id"`
	TaskID    uint64    `json:"task_id"`
	UserID    uint64    `json:"user_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
	}
}

// ToTaskDetailDTO converts a task with loaded project and logs
func ToTaskDetailDTO(task models.Task) TaskDetailDTO {
	logs := make([]TaskLogDTO, len(task.Logs))
	for i, l := range task.Logs {
		logs[i] = ToTaskLogDTO(l)
	}

	return TaskDetailDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Project:     ToProjectDTO(task.Project),
		Logs:        logs,
	}
}

// ToTaskLogDTO converts a TaskLog model to TaskLogDTO
func ToTaskLogDTO(log models.TaskLog) TaskLogDTO {
	return TaskLogDTO{
		ID:        log.ID,
		TaskID:    log.TaskID,
		UserID:    log.UserID,
		Action:    log.Action,
		Timestamp: log.Timestamp,
	}
}
