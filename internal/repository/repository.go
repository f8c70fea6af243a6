package repository

import (
	"github.com/yukikurage/project-management-api/internal/models"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListForUser lists projects the user owns or is a member of
	ListForUser(userID uint64, preload ...string) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete removes a project together with its members, columns, tasks
	// and task assignments in a single transaction
	Delete(id uint64) error

	// FindMember finds a specific project member
	FindMember(projectID, userID uint64) (*models.ProjectMember, error)

	// ListMembers lists all members of a project
	ListMembers(projectID uint64) ([]models.ProjectMember, error)

	// AddMember adds a member to a project
	AddMember(member *models.ProjectMember) error

	// RemoveMembers removes the given members; missing pairs are no-ops
	RemoveMembers(projectID uint64, userIDs []uint64) error

	// SyncMembers replaces the entire member row set with the given users
	SyncMembers(projectID uint64, userIDs []uint64) error
}

// ColumnRepository defines the interface for column data access.
// Every listing it returns is sorted ascending by order.
type ColumnRepository interface {
	// Create creates a column, assigning the next order value in its project
	Create(column *models.Column) error

	// FindByProjectAndID finds a column scoped to a project
	FindByProjectAndID(projectID, columnID uint64) (*models.Column, error)

	// ListByProject lists a project's columns ordered ascending
	ListByProject(projectID uint64) ([]models.Column, error)

	// Update updates a column
	Update(column *models.Column) error

	// Delete soft deletes a column scoped to a project
	Delete(projectID, columnID uint64) error

	// Reorder rewrites order values for the given column IDs in sequence,
	// starting at startOrder. IDs outside the project match zero rows and
	// columns omitted from the list keep their previous order.
	Reorder(projectID uint64, columnIDs []uint64, startOrder int) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ColumnID       *uint64
	AssignedUserID *uint64
	Page           int
	PageSize       int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByProjectAndID finds a task scoped to a project with optional preloading
	FindByProjectAndID(projectID, taskID uint64, preload ...string) (*models.Task, error)

	// ListByProject retrieves a project's tasks with filtering and pagination
	ListByProject(projectID uint64, filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task and its assignments
	Delete(projectID, taskID uint64) error

	// AssignUser attaches a user to a task; attaching an existing pair is a no-op
	AssignUser(taskID, userID uint64) error

	// UnassignUser detaches a user from a task; a missing pair is a no-op
	UnassignUser(taskID, userID uint64) error

	// FindAssignment finds a specific task assignment
	FindAssignment(taskID, userID uint64) (*models.TaskAssignment, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// CountByIDs counts how many of the given user IDs exist
	CountByIDs(userIDs []uint64) (int64, error)
}
