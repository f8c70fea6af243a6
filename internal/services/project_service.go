package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectTitleRequired = errors.New("project title cannot be empty")
	ErrNoUserIDsProvided    = errors.New("at least one user ID is required")
	ErrUnknownUsers         = errors.New("one or more users do not exist")
)

// ProjectService provides business logic for project and membership operations.
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

// CreateProjectInput represents parameters to create a new project. ActorID
// is the authenticated user, or nil for system/seed-time creations.
type CreateProjectInput struct {
	Title       string
	Description string
	ActorID     *uint64
}

// UpdateProjectInput represents input for updating a project.
type UpdateProjectInput struct {
	Title       *string
	Description *string
}

// CreateProject creates a project, stamping the acting user as owner before
// the record is persisted. A missing actor leaves ownership unset.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrProjectTitleRequired
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		OwnerID:     input.ActorID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProjectForUser resolves a project for an acting user. The lookup is two
// composable steps: resolve the identifier, then check membership. A missing
// record, a soft-deleted record and a record the user may not see all
// collapse to ErrProjectNotFound, so callers cannot probe for existence.
func (s *ProjectService) GetProjectForUser(projectID, userID uint64, preload ...string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.ensureMember(project, userID); err != nil {
		return nil, err
	}

	return project, nil
}

// ListProjectsForUser returns projects the user owns or was granted access to.
func (s *ProjectService) ListProjectsForUser(userID uint64, preload ...string) ([]models.Project, error) {
	projects, err := s.projectRepo.ListForUser(userID, preload...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateProject updates a project's title and description.
func (s *ProjectService) UpdateProject(projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrProjectTitleRequired
		}
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project with its members, columns, tasks and task
// assignments as one atomic unit.
func (s *ProjectService) DeleteProject(projectID uint64) error {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// SyncUsers replaces the project's member set with exactly the given users.
// Members absent from the list lose access; the owner keeps implicit access
// regardless.
func (s *ProjectService) SyncUsers(projectID uint64, userIDs []uint64) error {
	if len(userIDs) > 0 {
		if err := s.ensureUsersExist(userIDs); err != nil {
			return err
		}
	}

	if err := s.projectRepo.SyncMembers(projectID, uniqueUint64(userIDs)); err != nil {
		return fmt.Errorf("failed to sync project members: %w", err)
	}

	return nil
}

// ToggleUser flips a single user's membership: absent pairs are added,
// present pairs are removed. It reports whether the user is a member after
// the call.
func (s *ProjectService) ToggleUser(projectID, userID uint64) (bool, error) {
	_, err := s.projectRepo.FindMember(projectID, userID)
	if err == nil {
		if err := s.projectRepo.RemoveMembers(projectID, []uint64{userID}); err != nil {
			return false, fmt.Errorf("failed to remove project member: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to find project member: %w", err)
	}

	if err := s.ensureUsersExist([]uint64{userID}); err != nil {
		return false, err
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
	}
	if err := s.projectRepo.AddMember(member); err != nil {
		return false, fmt.Errorf("failed to add project member: %w", err)
	}

	return true, nil
}

// UnassignUsers removes the given users from the project's member set.
// Removing a pair that does not exist is a no-op, not an error.
func (s *ProjectService) UnassignUsers(projectID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return ErrNoUserIDsProvided
	}

	if err := s.projectRepo.RemoveMembers(projectID, uniqueUint64(userIDs)); err != nil {
		return fmt.Errorf("failed to unassign users: %w", err)
	}

	return nil
}

// ListMembers returns the project's member rows with users loaded.
func (s *ProjectService) ListMembers(projectID uint64) ([]models.ProjectMember, error) {
	members, err := s.projectRepo.ListMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}
	return members, nil
}

// ensureMember verifies that a user may see the project: the owner always
// may, anyone else needs a member row.
func (s *ProjectService) ensureMember(project *models.Project, userID uint64) error {
	if project.OwnerID != nil && *project.OwnerID == userID {
		return nil
	}

	_, err := s.projectRepo.FindMember(project.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to verify project membership: %w", err)
	}
	return nil
}

// ensureUsersExist verifies that every given user ID references a live user.
func (s *ProjectService) ensureUsersExist(userIDs []uint64) error {
	unique := uniqueUint64(userIDs)
	count, err := s.userRepo.CountByIDs(unique)
	if err != nil {
		return fmt.Errorf("failed to verify users: %w", err)
	}
	if int(count) != len(unique) {
		return ErrUnknownUsers
	}
	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
