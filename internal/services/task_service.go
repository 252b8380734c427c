package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/teamtask/teamtask-server/internal/authz"
	"github.com/teamtask/teamtask-server/internal/models"
	"github.com/teamtask/teamtask-server/internal/repository"
	"gorm.io/gorm"
)

var (
	// ErrTaskNotFound covers both absent and invisible tasks.
	ErrTaskNotFound = errors.New("task not found")
	// ErrNotProjectOwner is returned when a member who can see a task tries
	// an owner-only action on it. Unlike visibility failures this surfaces
	// as forbidden: the same request already disclosed the task's existence.
	ErrNotProjectOwner = errors.New("only the project owner can delete a task")
)

const actionCreated = "Created a task"

// TaskService handles task business logic.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
}

// Create creates a task in a project visible to the caller and appends the
// creation audit entry in the same transaction as the insert.
func (s *TaskService) Create(userID, projectID uint64, input CreateTaskInput) (*models.Task, error) {
	if _, err := s.projectRepo.FindVisible(projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	task := &models.Task{
		ProjectID:   projectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	}

	if err := s.taskRepo.CreateWithLog(task, userID, actionCreated); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Get returns a visible task with its project and logs loaded.
func (s *TaskService) Get(userID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindVisible(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateTaskInput carries the task patch: each slot applies only when present.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
}

// Update applies present fields to a visible task and appends an audit
// entry naming the changed fields, in the same transaction as the save.
// Any member of the parent project may edit.
func (s *TaskService) Update(userID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.Get(userID, taskID)
	if err != nil {
		return nil, err
	}

	var changed []string
	if input.Title != nil {
		task.Title = *input.Title
		changed = append(changed, "title")
	}
	if input.Description != nil {
		task.Description = *input.Description
		changed = append(changed, "description")
	}
	if input.Status != nil {
		task.Status = *input.Status
		changed = append(changed, "status")
	}

	action := "Updated fields: " + strings.Join(changed, ", ")
	if err := s.taskRepo.UpdateWithLog(task, userID, action); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.Get(userID, taskID)
}

// Delete removes a task and its logs. Visibility is required to find the
// task at all; deleting additionally requires owning the parent project.
func (s *TaskService) Delete(userID, taskID uint64) error {
	task, err := s.Get(userID, taskID)
	if err != nil {
		return err
	}

	if !authz.TaskDeletableBy(task, userID) {
		return ErrNotProjectOwner
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
