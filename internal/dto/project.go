package dto

import (
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	OwnerID     *uint64            `json:"owner_id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Owner       *UserDTO           `json:"owner,omitempty"`
	Columns     []ColumnDTO        `json:"columns,omitempty"`
	Tasks       []TaskDTO          `json:"tasks,omitempty"`
	Members     []ProjectMemberDTO `json:"members,omitempty"`
}

// ProjectMemberDTO represents a member in a project
type ProjectMemberDTO struct {
	User     UserDTO   `json:"user"`
	JoinedAt time.Time `json:"joined_at"`
}

// ToProjectMemberDTO converts a member row to DTO
func ToProjectMemberDTO(member models.ProjectMember) ProjectMemberDTO {
	return ProjectMemberDTO{
		User:     ToUserDTO(member.User),
		JoinedAt: member.CreatedAt,
	}
}

// ToProjectDTO converts a Project model to ProjectDTO. Preloaded relations
// are included; columns arrive already sorted by the repository's ordered
// scope and their sequence is preserved here.
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	if project.Owner != nil {
		owner := ToUserDTO(*project.Owner)
		dto.Owner = &owner
	}

	if len(project.Columns) > 0 {
		dto.Columns = make([]ColumnDTO, len(project.Columns))
		for i, column := range project.Columns {
			dto.Columns[i] = ToColumnDTO(column)
		}
	}

	if len(project.Tasks) > 0 {
		dto.Tasks = make([]TaskDTO, len(project.Tasks))
		for i, task := range project.Tasks {
			dto.Tasks[i] = ToTaskDTO(task)
		}
	}

	if len(project.Members) > 0 {
		dto.Members = make([]ProjectMemberDTO, len(project.Members))
		for i, member := range project.Members {
			dto.Members[i] = ToProjectMemberDTO(member)
		}
	}

	return dto
}

// ToProjectListResponse converts projects to a list of DTOs
func ToProjectListResponse(projects []models.Project) []ProjectDTO {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}
	return items
}
