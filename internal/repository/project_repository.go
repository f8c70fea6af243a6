package repository

import (
	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

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

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project

	query := applyProjectPreloads(r.db, preload)
	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// ListForUser lists projects the user owns or is a member of
func (r *GormProjectRepository) ListForUser(userID uint64, preload ...string) ([]models.Project, error) {
	memberProjects := r.db.Model(&models.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userID)

	query := applyProjectPreloads(r.db, preload).
		Where(r.db.Where("owner_id = ?", userID).Or("id IN (?)", memberProjects))

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete deletes a project and all related data in a transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint64
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", id).
			Pluck("id", &taskIDs).Error; err != nil {
			return err
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).
				Delete(&models.TaskAssignment{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Column{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// FindMember finds a specific project member
func (r *GormProjectRepository) FindMember(projectID, userID uint64) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a project
func (r *GormProjectRepository) ListMembers(projectID uint64) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember adds a member to a project
func (r *GormProjectRepository) AddMember(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

// RemoveMembers removes the given members; missing pairs match zero rows
func (r *GormProjectRepository) RemoveMembers(projectID uint64, userIDs []uint64) error {
	return r.db.Where("project_id = ? AND user_id IN ?", projectID, userIDs).
		Delete(&models.ProjectMember{}).Error
}

// SyncMembers replaces the entire member row set with exactly the given
// users: rows outside the new set are removed, missing rows are inserted and
// matching rows are left untouched.
func (r *GormProjectRepository) SyncMembers(projectID uint64, userIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(userIDs) == 0 {
			return tx.Where("project_id = ?", projectID).
				Delete(&models.ProjectMember{}).Error
		}

		if err := tx.Where("project_id = ? AND user_id NOT IN ?", projectID, userIDs).
			Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		members := make([]models.ProjectMember, len(userIDs))
		for i, userID := range userIDs {
			members[i] = models.ProjectMember{
				ProjectID: projectID,
				UserID:    userID,
			}
		}

		return tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).
			Create(&members).Error
	})
}

// applyProjectPreloads attaches relation preloads. Columns always load through
// the ordered scope so the ascending-by-order contract holds on this read
// path too.
func applyProjectPreloads(db *gorm.DB, preload []string) *gorm.DB {
	query := db
	for _, p := range preload {
		if p == "Columns" {
			query = query.Preload("Columns", database.OrderedColumns)
			continue
		}
		query = query.Preload(p)
	}
	return query
}
