package models

import (
	"time"

	"gorm.io/gorm"
)

// Project is owned by the user referenced by OwnerID. OwnerID is nullable so
// that system or seed-time creations without an authenticated actor still
// succeed; the owner hook in the project service stamps it when an actor is
// present.
type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	OwnerID     *uint64        `gorm:"index" json:"owner_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner   *User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Columns []Column        `gorm:"foreignKey:ProjectID" json:"columns,omitempty"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
}
