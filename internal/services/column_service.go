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
	ErrColumnNotFound      = errors.New("column not found")
	ErrColumnTitleRequired = errors.New("column title cannot be empty")
	ErrNoColumnIDs         = errors.New("column IDs are required")
)

// ColumnService provides business logic for column operations, including the
// ordering engine over a project's columns.
type ColumnService struct {
	columnRepo repository.ColumnRepository
}

// NewColumnService creates a new ColumnService.
func NewColumnService(columnRepo repository.ColumnRepository) *ColumnService {
	return &ColumnService{
		columnRepo: columnRepo,
	}
}

// CreateColumn creates a column at the end of the project's board.
func (s *ColumnService) CreateColumn(projectID uint64, title string) (*models.Column, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrColumnTitleRequired
	}

	column := &models.Column{
		Title:     title,
		ProjectID: projectID,
	}

	if err := s.columnRepo.Create(column); err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}

	return column, nil
}

// ListColumns returns the project's columns in ascending order.
func (s *ColumnService) ListColumns(projectID uint64) ([]models.Column, error) {
	columns, err := s.columnRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	return columns, nil
}

// UpdateColumn renames a column. Columns of other projects resolve to
// ErrColumnNotFound.
func (s *ColumnService) UpdateColumn(projectID, columnID uint64, title string) (*models.Column, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrColumnTitleRequired
	}

	column, err := s.columnRepo.FindByProjectAndID(projectID, columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find column: %w", err)
	}

	column.Title = title
	if err := s.columnRepo.Update(column); err != nil {
		return nil, fmt.Errorf("failed to update column: %w", err)
	}

	return column, nil
}

// DeleteColumn soft deletes a column.
func (s *ColumnService) DeleteColumn(projectID, columnID uint64) error {
	if _, err := s.columnRepo.FindByProjectAndID(projectID, columnID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrColumnNotFound
		}
		return fmt.Errorf("failed to find column: %w", err)
	}

	if err := s.columnRepo.Delete(projectID, columnID); err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}

	return nil
}

// ReorderColumns rewrites the order values of the project's columns to match
// the given sequence, starting at startOrder. A nil sequence is invalid
// input. IDs that do not belong to the project are silent no-ops, and columns
// omitted from the sequence keep their previous order; a partial sequence can
// therefore leave duplicate or non-contiguous values, which is the accepted
// lenient behavior.
func (s *ColumnService) ReorderColumns(projectID uint64, columnIDs []uint64, startOrder int) error {
	if columnIDs == nil {
		return ErrNoColumnIDs
	}

	if err := s.columnRepo.Reorder(projectID, columnIDs, startOrder); err != nil {
		return fmt.Errorf("failed to reorder columns: %w", err)
	}

	return nil
}
