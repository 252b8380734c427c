package services

import (
	"errors"
	"fmt"

	"github.com/teamtask/teamtask-server/internal/authz"
	"github.com/teamtask/teamtask-server/internal/models"
	"github.com/teamtask/teamtask-server/internal/repository"
	"gorm.io/gorm"
)

var (
	// ErrProjectNotFound is returned both when a project does not exist and
	// when it is outside the caller's visibility set, so that existence is
	// never leaked.
	ErrProjectNotFound    = errors.New("project not found")
	ErrProjectDataInvalid = errors.New("invalid project data")
)

// ProjectService handles project business logic.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// List returns all projects the user owns or is a member of.
func (s *ProjectService) List(userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListVisible(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get returns a visible project with owner, members, and tasks loaded.
func (s *ProjectService) Get(userID, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindVisible(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// Create creates a project owned by the caller.
func (s *ProjectService) Create(userID uint64, title string) (*models.Project, error) {
	project := &models.Project{
		Title:   title,
		OwnerID: userID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, ErrProjectDataInvalid
	}

	return project, nil
}

// UpdateProjectInput carries the owner's patch: each slot applies only when
// present. Unknown user ids in the membership lists are skipped; adds and
// removes are idempotent per id.
type UpdateProjectInput struct {
	Title       *string
	UsersAdd    []uint64
	UsersRemove []uint64
}

// Update applies a patch to a project the caller owns. A visible project
// the caller does not own reads as not found, so non-owners cannot tell
// owner-only routes apart from missing projects.
func (s *ProjectService) Update(userID, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.Get(userID, projectID)
	if err != nil {
		return nil, err
	}
	if !authz.ProjectMutableBy(project, userID) {
		return nil, ErrProjectNotFound
	}

	if input.Title != nil {
		project.Title = *input.Title
		if err := s.projectRepo.Save(project); err != nil {
			return nil, fmt.Errorf("failed to update project: %w", err)
		}
	}

	for _, id := range input.UsersAdd {
		if _, err := s.userRepo.FindByID(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to look up user %d: %w", id, err)
		}
		if err := s.projectRepo.AddMember(projectID, id); err != nil {
			return nil, fmt.Errorf("failed to add member %d: %w", id, err)
		}
	}

	for _, id := range input.UsersRemove {
		if err := s.projectRepo.RemoveMember(projectID, id); err != nil {
			return nil, fmt.Errorf("failed to remove member %d: %w", id, err)
		}
	}

	return s.Get(userID, projectID)
}

// Delete removes a project the caller owns, cascading tasks and their logs.
func (s *ProjectService) Delete(userID, projectID uint64) error {
	project, err := s.Get(userID, projectID)
	if err != nil {
		return err
	}
	if !authz.ProjectMutableBy(project, userID) {
		return ErrProjectNotFound
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
