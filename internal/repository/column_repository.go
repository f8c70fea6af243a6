package repository

import (
	"errors"

	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormColumnRepository is a GORM implementation of ColumnRepository
type GormColumnRepository struct {
	db *gorm.DB
}

// NewColumnRepository creates a new ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &GormColumnRepository{db: db}
}

// Create creates a column at the end of its project's board. The order value
// is max(order)+1 among the project's live columns so it stays unique without
// requiring a reorder call first.
func (r *GormColumnRepository) Create(column *models.Column) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var last models.Column
		err := tx.Where("project_id = ?", column.ProjectID).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}, Desc: true}).
			First(&last).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		column.Order = last.Order + 1
		return tx.Create(column).Error
	})
}

// FindByProjectAndID finds a column scoped to a project
func (r *GormColumnRepository) FindByProjectAndID(projectID, columnID uint64) (*models.Column, error) {
	var column models.Column
	if err := r.db.Where("project_id = ? AND id = ?", projectID, columnID).
		First(&column).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// ListByProject lists a project's columns ordered ascending
func (r *GormColumnRepository) ListByProject(projectID uint64) ([]models.Column, error) {
	var columns []models.Column
	if err := r.db.Scopes(database.OrderedColumns).
		Where("project_id = ?", projectID).
		Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

// Update updates a column
func (r *GormColumnRepository) Update(column *models.Column) error {
	return r.db.Save(column).Error
}

// Delete soft deletes a column scoped to a project
func (r *GormColumnRepository) Delete(projectID, columnID uint64) error {
	return r.db.Where("project_id = ? AND id = ?", projectID, columnID).
		Delete(&models.Column{}).Error
}

// Reorder rewrites order values for the given column IDs in sequence. Each
// update is scoped to (project_id, id), so an ID from another project matches
// zero rows and columns omitted from the list keep their previous order. The
// loop runs in one transaction; concurrent reorders resolve to the last
// committed write.
func (r *GormColumnRepository) Reorder(projectID uint64, columnIDs []uint64, startOrder int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		order := startOrder
		for _, columnID := range columnIDs {
			if err := tx.Model(&models.Column{}).
				Where("project_id = ? AND id = ?", projectID, columnID).
				Update("order", order).Error; err != nil {
				return err
			}
			order++
		}
		return nil
	})
}
