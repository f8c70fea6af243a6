package models

import (
	"time"

	"gorm.io/gorm"
)

// Task belongs to a project and may optionally be placed in one of that
// project's columns. ColumnID being nil means the task is unplaced.
type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	ProjectID   uint64         `gorm:"not null;index" json:"project_id"`
	ColumnID    *uint64        `gorm:"index" json:"column_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project     Project          `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Column      *Column          `gorm:"foreignKey:ColumnID" json:"column,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}
