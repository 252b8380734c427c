// Package authz holds the per-resource access predicates. Repository
// lookups additionally embed the visibility predicate in SQL so that rows
// outside a caller's visibility set are indistinguishable from absent rows.
package authz

import "github.com/teamtask/teamtask-server/internal/models"

// ProjectVisibleTo reports whether the user is the project's owner or a
// member. Requires project.Members to be loaded.
func ProjectVisibleTo(project *models.Project, userID uint64) bool {
	if project.OwnerID == userID {
		return true
	}
	for _, m := range project.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// ProjectMutableBy reports whether the user may edit the project's title or
// membership, or delete it. Only the owner may.
func ProjectMutableBy(project *models.Project, userID uint64) bool {
	return project.OwnerID == userID
}

// TaskVisibleTo delegates to the parent project's visibility. Requires
// task.Project (with members) to be loaded.
func TaskVisibleTo(task *models.Task, userID uint64) bool {
	return ProjectVisibleTo(&task.Project, userID)
}

// TaskEditableBy is deliberately as loose as visibility: any member or the
// owner may edit task fields.
func TaskEditableBy(task *models.Task, userID uint64) bool {
	return TaskVisibleTo(task, userID)
}

// TaskDeletableBy is stricter than editing: only the parent project's owner
// may delete a task.
func TaskDeletableBy(task *models.Task, userID uint64) bool {
	return task.Project.OwnerID == userID
}
