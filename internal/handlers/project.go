package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/services"
)

// ProjectHandler coordinates project and membership HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns the projects the user owns or is a member of.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projects, err := h.projectService.ListProjectsForUser(userID, parseWith(c)...)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectListResponse(projects),
	})
}

// CreateProject creates a project owned by the acting user.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		ActorID:     &userID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// GetProject returns a project with the relations requested via `with`.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	userID, _ := middleware.GetUserID(c)

	// Reload through the scoped lookup so requested relations are attached.
	loaded, err := h.projectService.GetProjectForUser(project.ID, userID, parseWith(c)...)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*loaded))
}

// UpdateProject updates title/description. A `users` array replaces the
// member set with exactly that set (sync semantics).
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type UpdateProjectRequest struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Users       []uint64 `json:"users"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.projectService.UpdateProject(project.ID, services.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	if req.Users != nil {
		if err := h.projectService.SyncUsers(project.ID, req.Users); err != nil {
			respondProjectError(c, err)
			return
		}
	}

	members, err := h.projectService.ListMembers(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch project members")
		return
	}
	updated.Members = members

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated))
}

// ToggleMember flips a single user's membership on the project.
func (h *ProjectHandler) ToggleMember(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type ToggleMemberRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req ToggleMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assigned, err := h.projectService.ToggleUser(project.ID, req.UserID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	members, err := h.projectService.ListMembers(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch project members")
		return
	}

	memberDTOs := make([]dto.ProjectMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = dto.ToProjectMemberDTO(member)
	}

	c.JSON(http.StatusOK, gin.H{
		"assigned": assigned,
		"members":  memberDTOs,
	})
}

// UnassignUsers removes the given users from the project's member set.
func (h *ProjectHandler) UnassignUsers(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type UnassignRequest struct {
		Users []uint64 `json:"users" binding:"required"`
	}

	var req UnassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projectService.UnassignUsers(project.ID, req.Users); err != nil {
		respondProjectError(c, err)
		return
	}

	userID, _ := middleware.GetUserID(c)
	loaded, err := h.projectService.GetProjectForUser(project.ID, userID, "Members.User")
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*loaded))
}

// DeleteProject removes a project and everything it owns.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	if err := h.projectService.DeleteProject(project.ID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// parseWith maps the `with` query parameter to relation preloads. Unknown
// names are ignored.
func parseWith(c *gin.Context) []string {
	raw := c.Query("with")
	if raw == "" {
		return nil
	}

	var preloads []string
	for _, name := range strings.Split(raw, ",") {
		switch strings.TrimSpace(name) {
		case "columns":
			preloads = append(preloads, "Columns")
		case "tasks":
			preloads = append(preloads, "Tasks")
		case "members":
			preloads = append(preloads, "Members.User")
		case "owner":
			preloads = append(preloads, "Owner")
		}
	}
	return preloads
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrProjectTitleRequired),
		errors.Is(err, services.ErrNoUserIDsProvided),
		errors.Is(err, services.ErrUnknownUsers):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
