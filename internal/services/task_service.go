package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskTitleRequired  = errors.New("task title is required")
	ErrColumnNotInProject = errors.New("column does not belong to this project")
	ErrAssigneeNotFound   = errors.New("user not found")
)

// TaskService handles task business logic, including task-user assignments.
type TaskService struct {
	taskRepo   repository.TaskRepository
	columnRepo repository.ColumnRepository
	userRepo   repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, columnRepo repository.ColumnRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		columnRepo: columnRepo,
		userRepo:   userRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	ColumnID    *uint64
}

// UpdateTaskInput represents input for updating a task.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	ColumnID    *uint64
	ClearColumn bool
}

// ListTasksInput represents filters for listing a project's tasks.
type ListTasksInput struct {
	ColumnID       *uint64
	AssignedUserID *uint64
	Page           int
	PageSize       int
}

// CreateTask creates a task under a project. A column placement, when given,
// must reference a column of the same project.
func (s *TaskService) CreateTask(projectID uint64, input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTaskTitleRequired
	}

	if input.ColumnID != nil {
		if err := s.ensureColumnInProject(projectID, *input.ColumnID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		ProjectID:   projectID,
		ColumnID:    input.ColumnID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns a task with its assignments loaded.
func (s *TaskService) GetTask(projectID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByProjectAndID(projectID, taskID, "Assignments", "Assignments.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// ListTasks returns a project's tasks with filtering and pagination.
func (s *TaskService) ListTasks(projectID uint64, input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		ColumnID:       input.ColumnID,
		AssignedUserID: input.AssignedUserID,
		Page:           input.Page,
		PageSize:       input.PageSize,
	}

	tasks, total, err := s.taskRepo.ListByProject(projectID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// UpdateTask updates an existing task. Moving the task to a column of another
// project is rejected.
func (s *TaskService) UpdateTask(projectID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByProjectAndID(projectID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTaskTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearColumn {
		task.ColumnID = nil
	} else if input.ColumnID != nil {
		if err := s.ensureColumnInProject(projectID, *input.ColumnID); err != nil {
			return nil, err
		}
		task.ColumnID = input.ColumnID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetTask(projectID, task.ID)
}

// DeleteTask soft deletes a task together with its assignments.
func (s *TaskService) DeleteTask(projectID, taskID uint64) error {
	if _, err := s.taskRepo.FindByProjectAndID(projectID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(projectID, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// AssignUser attaches a user to a task. Attaching an already-assigned user
// is a no-op on the set, not an error.
func (s *TaskService) AssignUser(projectID, taskID, userID uint64) (*models.Task, error) {
	if _, err := s.taskRepo.FindByProjectAndID(projectID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.taskRepo.AssignUser(taskID, userID); err != nil {
		return nil, fmt.Errorf("failed to assign user: %w", err)
	}

	return s.GetTask(projectID, taskID)
}

// UnassignUser detaches a user from a task; a missing pair is a no-op.
func (s *TaskService) UnassignUser(projectID, taskID, userID uint64) (*models.Task, error) {
	if _, err := s.taskRepo.FindByProjectAndID(projectID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.UnassignUser(taskID, userID); err != nil {
		return nil, fmt.Errorf("failed to unassign user: %w", err)
	}

	return s.GetTask(projectID, taskID)
}

// ensureColumnInProject verifies the column belongs to the project.
func (s *TaskService) ensureColumnInProject(projectID, columnID uint64) error {
	_, err := s.columnRepo.FindByProjectAndID(projectID, columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrColumnNotInProject
		}
		return fmt.Errorf("failed to verify column: %w", err)
	}
	return nil
}
