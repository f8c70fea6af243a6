package models

import (
	"time"

	"gorm.io/gorm"
)

// Column is a board column inside a project. Order is unique among the
// project's live columns; every project-scoped column read sorts by it
// ascending (see database.OrderedColumns).
type Column struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	ProjectID uint64         `gorm:"not null;index" json:"project_id"`
	Order     int            `gorm:"column:order;not null" json:"order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Tasks   []Task  `gorm:"foreignKey:ColumnID" json:"tasks,omitempty"`
}
