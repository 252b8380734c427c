package repository

import (
	"github.com/teamtask/teamtask-server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// visibleProjects matches projects the user owns or is a member of.
const visibleProjects = `projects.owner_id = ? OR EXISTS (
	SELECT 1 FROM project_members
	WHERE project_members.project_id = projects.id
	  AND project_members.user_id = ?
)`

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindVisible finds a project the user owns or is a member of. A project
// outside the user's visibility set reads as gorm.ErrRecordNotFound.
func (r *GormProjectRepository) FindVisible(projectID, userID uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.
		Preload("Owner").
		Preload("Members.User").
		Preload("Tasks").
		Where("projects.id = ?", projectID).
		Where(visibleProjects, userID, userID).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListVisible lists all projects the user owns or is a member of
func (r *GormProjectRepository) ListVisible(userID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.
		Where(visibleProjects, userID, userID).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Save persists changes to the project's own columns only
func (r *GormProjectRepository) Save(project *models.Project) error {
	return r.db.Omit(clause.Associations).Save(project).Error
}

// AddMember adds a user to the project's membership set, keeping the
// original JoinedAt when the row already exists.
func (r *GormProjectRepository) AddMember(projectID, userID uint64) error {
	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
	}
	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&member).Error
}

// RemoveMember removes a user from the project's membership set
func (r *GormProjectRepository) RemoveMember(projectID, userID uint64) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

// Delete deletes a project and all related data in a transaction
func (r *GormProjectRepository) Delete(projectID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return deleteProjectsCascade(tx, []uint64{projectID})
	})
}

// deleteProjectsCascade removes projects and their dependents: task logs,
// tasks, membership rows, then the projects themselves. Must run inside a
// transaction.
func deleteProjectsCascade(tx *gorm.DB, projectIDs []uint64) error {
	if len(projectIDs) == 0 {
		return nil
	}

	var taskIDs []uint64
	if err := tx.Model(&models.Task{}).Where("project_id IN ?", projectIDs).Pluck("id", &taskIDs).Error; err != nil {
		return err
	}
	if len(taskIDs) > 0 {
		if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskLog{}).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("project_id IN ?", projectIDs).Delete(&models.Task{}).Error; err != nil {
		return err
	}

	if err := tx.Where("project_id IN ?", projectIDs).Delete(&models.ProjectMember{}).Error; err != nil {
		return err
	}

	return tx.Where("id IN ?", projectIDs).Delete(&models.Project{}).Error
}
