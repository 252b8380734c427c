package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teamtask/teamtask-server/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.TaskLog{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(&models.User{Username: "alice", PasswordHash: "x"}))

	err := repo.Create(&models.User{Username: "alice", PasswordHash: "y"})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The first record is unaffected.
	first, err := repo.FindByUsername("alice")
	require.NoError(t, err)
	require.Equal(t, "x", first.PasswordHash)
}

func TestUserRepository_Delete_Cascades(t *testing.T) {
	db := setupRepoTestDB(t)
	users := NewUserRepository(db)
	projects := NewProjectRepository(db)
	tasks := NewTaskRepository(db)

	owner := &models.User{Username: "owner", PasswordHash: "x"}
	other := &models.User{Username: "other", PasswordHash: "x"}
	require.NoError(t, users.Create(owner))
	require.NoError(t, users.Create(other))

	// Owner's project with the other user as a member and one task.
	owned := &models.Project{Title: "owned", OwnerID: owner.ID}
	require.NoError(t, projects.Create(owned))
	require.NoError(t, projects.AddMember(owned.ID, other.ID))

	ownedTask := &models.Task{ProjectID: owned.ID, Title: "t1", Status: "open"}
	require.NoError(t, tasks.CreateWithLog(ownedTask, other.ID, "Created a task"))

	// The other user's project, where the owner is a member and has
	// authored a log on its task.
	foreign := &models.Project{Title: "foreign", OwnerID: other.ID}
	require.NoError(t, projects.Create(foreign))
	require.NoError(t, projects.AddMember(foreign.ID, owner.ID))

	foreignTask := &models.Task{ProjectID: foreign.ID, Title: "t2", Status: "open"}
	require.NoError(t, tasks.CreateWithLog(foreignTask, other.ID, "Created a task"))

	updated := *foreignTask
	updated.Status = "done"
	require.NoError(t, tasks.UpdateWithLog(&updated, owner.ID, "Updated fields: status"))

	require.NoError(t, users.Delete(owner.ID))

	_, err := users.FindByID(owner.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Owned project and its tasks/logs are gone.
	var count int64
	require.NoError(t, db.Model(&models.Project{}).Where("id = ?", owned.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, db.Model(&models.Task{}).Where("project_id = ?", owned.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, db.Model(&models.TaskLog{}).Where("task_id = ?", ownedTask.ID).Count(&count).Error)
	require.Zero(t, count)

	// Membership rows referencing the deleted user are gone.
	require.NoError(t, db.Model(&models.ProjectMember{}).Where("user_id = ?", owner.ID).Count(&count).Error)
	require.Zero(t, count)

	// The other user's project and task survive, as does the log the
	// other user authored; the log authored by the deleted user does not.
	_, err = users.FindByID(other.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Task{}).Where("id = ?", foreignTask.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
	require.NoError(t, db.Model(&models.TaskLog{}).Where("task_id = ? AND user_id = ?", foreignTask.ID, other.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
	require.NoError(t, db.Model(&models.TaskLog{}).Where("user_id = ?", owner.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestProjectRepository_FindVisible(t *testing.T) {
	db := setupRepoTestDB(t)
	users := NewUserRepository(db)
	projects := NewProjectRepository(db)

	owner := &models.User{Username: "owner", PasswordHash: "x"}
	member := &models.User{Username: "member", PasswordHash: "x"}
	outsider := &models.User{Username: "outsider", PasswordHash: "x"}
	require.NoError(t, users.Create(owner))
	require.NoError(t, users.Create(member))
	require.NoError(t, users.Create(outsider))

	project := &models.Project{Title: "p", OwnerID: owner.ID}
	require.NoError(t, projects.Create(project))
	require.NoError(t, projects.AddMember(project.ID, member.ID))

	for _, id := range []uint64{owner.ID, member.ID} {
		found, err := projects.FindVisible(project.ID, id)
		require.NoError(t, err)
		require.Equal(t, project.ID, found.ID)
	}

	// An invisible project reads the same as a missing one.
	_, err := projects.FindVisible(project.ID, outsider.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = projects.FindVisible(99999, owner.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectRepository_AddMember_Idempotent(t *testing.T) {
	db := setupRepoTestDB(t)
	users := NewUserRepository(db)
	projects := NewProjectRepository(db)

	owner := &models.User{Username: "owner", PasswordHash: "x"}
	member := &models.User{Username: "member", PasswordHash: "x"}
	require.NoError(t, users.Create(owner))
	require.NoError(t, users.Create(member))

	project := &models.Project{Title: "p", OwnerID: owner.ID}
	require.NoError(t, projects.Create(project))

	require.NoError(t, projects.AddMember(project.ID, member.ID))
	require.NoError(t, projects.AddMember(project.ID, member.ID))

	var count int64
	require.NoError(t, db.Model(&models.ProjectMember{}).Where("project_id = ?", project.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// Removing a non-member is a no-op.
	require.NoError(t, projects.RemoveMember(project.ID, owner.ID))
	require.NoError(t, db.Model(&models.ProjectMember{}).Where("project_id = ?", project.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestTaskRepository_CreateWithLog_Atomic(t *testing.T) {
	db := setupRepoTestDB(t)
	users := NewUserRepository(db)
	projects := NewProjectRepository(db)
	tasks := NewTaskRepository(db)

	owner := &models.User{Username: "owner", PasswordHash: "x"}
	require.NoError(t, users.Create(owner))
	project := &models.Project{Title: "p", OwnerID: owner.ID}
	require.NoError(t, projects.Create(project))

	task := &models.Task{ProjectID: project.ID, Title: "t", Status: "open"}
	require.NoError(t, tasks.CreateWithLog(task, owner.ID, "Created a task"))

	found, err := tasks.FindVisible(task.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, found.Logs, 1)
	require.Equal(t, "Created a task", found.Logs[0].Action)
	require.Equal(t, owner.ID, found.Logs[0].UserID)
	require.False(t, found.Logs[0].Timestamp.IsZero())
}
