package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/irondev/iron-dev-agent/internal/dto"
	apierrors "github.com/irondev/iron-dev-agent/internal/errors"
	"github.com/irondev/iron-dev-agent/internal/middleware"
	"github.com/irondev/iron-dev-agent/internal/services"
	"github.com/irondev/iron-dev-agent/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProject creates a project owned by the caller
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		OwnerID:     userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"project": dto.ToProjectDTO(*project),
	})
}

// ListProjects returns the projects the caller collaborates on, without artifacts
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	page := utils.OptionalPagination(c)
	projects, total, err := h.projectService.ListProjects(userID, page)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	body := gin.H{
		"success":  true,
		"projects": dto.ToProjectListDTO(projects),
	}
	if page != nil {
		body["pagination"] = utils.PaginationResponse{
			Page:  page.Page,
			Limit: page.Limit,
			Total: total,
		}
	}
	c.JSON(http.StatusOK, body)
}

// GetProject returns the full project
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, ok := middleware.GetProjectID(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	project, err := h.projectService.GetProject(projectID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": dto.ToProjectDTO(*project),
	})
}

// UpdateProject edits project metadata
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, ok := middleware.GetProjectID(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(projectID, userID, services.UpdateProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		Status:       req.Status,
		CurrentStage: req.CurrentStage,
		Tags:         req.Tags,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": dto.ToProjectDTO(*project),
	})
}

// DeleteProject removes the project. Only the owner may do this.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, ok := middleware.GetProjectID(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	if err := h.projectService.DeleteProject(projectID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project deleted successfully",
	})
}

// AddCollaborator adds an existing user by username
func (h *ProjectHandler) AddCollaborator(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, ok := middleware.GetProjectID(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	var req dto.AddCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.projectService.AddCollaborator(projectID, userID, services.AddCollaboratorInput{
		Username: req.Username,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"collaborator": dto.ToCollaboratorDTO(*member),
	})
}

// RemoveCollaborator removes a member from the project
func (h *ProjectHandler) RemoveCollaborator(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, ok := middleware.GetProjectID(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.projectService.RemoveCollaborator(projectID, userID, targetID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Collaborator removed successfully",
	})
}
