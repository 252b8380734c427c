package repository

import (
	"github.com/teamtask/teamtask-server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateWithLog inserts the task and its audit entry atomically
func (r *GormTaskRepository) CreateWithLog(task *models.Task, userID uint64, action string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}

		entry := models.TaskLog{
			TaskID: task.ID,
			UserID: userID,
			Action: action,
		}
		return tx.Create(&entry).Error
	})
}

// FindVisible finds a task whose parent project the user owns or is a
// member of. An invisible task reads as gorm.ErrRecordNotFound.
func (r *GormTaskRepository) FindVisible(taskID, userID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.id = ?", taskID).
		Where(visibleProjects, userID, userID).
		Preload("Project").
		Preload("Project.Members").
		Preload("Logs").
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateWithLog saves the task's columns and appends the audit entry in the
// same transaction
func (r *GormTaskRepository) UpdateWithLog(task *models.Task, userID uint64, action string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}

		entry := models.TaskLog{
			TaskID: task.ID,
			UserID: userID,
			Action: action,
		}
		return tx.Create(&entry).Error
	})
}

// Delete deletes a task and its logs in a transaction
func (r *GormTaskRepository) Delete(taskID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskLog{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, taskID).Error
	})
}
