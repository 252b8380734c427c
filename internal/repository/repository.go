package repository

import (
	"github.com/teamtask/teamtask-server/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user. Returns gorm.ErrDuplicatedKey when the
	// username is already taken; uniqueness is enforced by the store, not
	// by a pre-check.
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindProfileByUsername finds a user with member projects, owned
	// projects, and authored logs loaded.
	FindProfileByUsername(username string) (*models.User, error)

	// List returns all users
	List() ([]models.User, error)

	// Delete removes a user together with their authored logs, their owned
	// projects (cascading tasks and logs), and their membership rows, in a
	// single transaction.
	Delete(id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindVisible finds a project by ID, restricted to projects the user
	// owns or is a member of. Invisible projects read as not found.
	// Loads owner, members (with users), and tasks.
	FindVisible(projectID, userID uint64) (*models.Project, error)

	// ListVisible lists all projects the user owns or is a member of
	ListVisible(userID uint64) ([]models.Project, error)

	// Save persists changes to a project's own columns
	Save(project *models.Project) error

	// AddMember adds a user to the membership set; adding an existing
	// member is a no-op.
	AddMember(projectID, userID uint64) error

	// RemoveMember removes a user from the membership set; removing a
	// non-member is a no-op.
	RemoveMember(projectID, userID uint64) error

	// Delete removes a project, its tasks, those tasks' logs, and its
	// membership rows in a single transaction.
	Delete(projectID uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithLog inserts a task and its audit log entry atomically:
	// either both land or neither does.
	CreateWithLog(task *models.Task, userID uint64, action string) error

	// FindVisible finds a task by ID, restricted to tasks whose parent
	// project the user owns or is a member of. Loads the project (with
	// members) and the task's logs.
	FindVisible(taskID, userID uint64) (*models.Task, error)

	// UpdateWithLog persists task field changes and appends an audit log
	// entry in the same transaction.
	UpdateWithLog(task *models.Task, userID uint64, action string) error

	// Delete removes a task and its logs in a single transaction.
	Delete(taskID uint64) error
}
