package dto

import "github.com/yukikurage/project-management-api/internal/models"

// ColumnDTO represents a column in API responses
type ColumnDTO struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	ProjectID uint64 `json:"project_id"`
	Order     int    `json:"order"`
}

// ToColumnDTO converts a Column model to ColumnDTO
func ToColumnDTO(column models.Column) ColumnDTO {
	return ColumnDTO{
		ID:        column.ID,
		Title:     column.Title,
		ProjectID: column.ProjectID,
		Order:     column.Order,
	}
}

// ToColumnListResponse converts columns to a list of DTOs, keeping the
// ascending order sequence they were loaded in
func ToColumnListResponse(columns []models.Column) []ColumnDTO {
	items := make([]ColumnDTO, len(columns))
	for i, column := range columns {
		items[i] = ToColumnDTO(column)
	}
	return items
}
