package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/services"
)

// ColumnHandler coordinates column HTTP handlers, including board reordering.
type ColumnHandler struct {
	columnService *services.ColumnService
}

// NewColumnHandler creates a new ColumnHandler.
func NewColumnHandler(columnService *services.ColumnService) *ColumnHandler {
	return &ColumnHandler{
		columnService: columnService,
	}
}

// CreateColumn creates a column at the end of the project's board.
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateColumnRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.columnService.CreateColumn(project.ID, req.Title)
	if err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToColumnDTO(*column))
}

// ListColumns returns the project's columns in ascending order.
func (h *ColumnHandler) ListColumns(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	columns, err := h.columnService.ListColumns(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch columns")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"columns": dto.ToColumnListResponse(columns),
	})
}

// UpdateColumn renames a column.
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	columnID, err := strconv.ParseUint(c.Param("column_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid column ID")
		return
	}

	type UpdateColumnRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.columnService.UpdateColumn(project.ID, columnID, req.Title)
	if err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToColumnDTO(*column))
}

// DeleteColumn soft deletes a column.
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	columnID, err := strconv.ParseUint(c.Param("column_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid column ID")
		return
	}

	if err := h.columnService.DeleteColumn(project.ID, columnID); err != nil {
		respondColumnError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Column deleted successfully",
	})
}

// ReorderColumns rewrites the board order to match the given id sequence and
// returns the columns in their new order.
func (h *ColumnHandler) ReorderColumns(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type ReorderRequest struct {
		ColumnIDs  []uint64 `json:"column_ids"`
		StartOrder int      `json:"start_order"`
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	startOrder := req.StartOrder
	if startOrder < 1 {
		startOrder = constants.DefaultOrderStart
	}

	if err := h.columnService.ReorderColumns(project.ID, req.ColumnIDs, startOrder); err != nil {
		respondColumnError(c, err)
		return
	}

	columns, err := h.columnService.ListColumns(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch columns")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"columns": dto.ToColumnListResponse(columns),
	})
}

func respondColumnError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrColumnNotFound):
		apierrors.NotFound(c, "Column not found")
	case errors.Is(err, services.ErrColumnTitleRequired),
		errors.Is(err, services.ErrNoColumnIDs):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
