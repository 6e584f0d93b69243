package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/irondev/iron-dev-agent/internal/dto"
	apierrors "github.com/irondev/iron-dev-agent/internal/errors"
	"github.com/irondev/iron-dev-agent/internal/middleware"
	"github.com/irondev/iron-dev-agent/internal/services"
)

type AIHandler struct {
	generationService *services.GenerationService
}

func NewAIHandler(generationService *services.GenerationService) *AIHandler {
	return &AIHandler{generationService: generationService}
}

// Generate asks the model for an artifact and stores it in the project,
// creating a project first when none is given.
func (h *AIHandler) Generate(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.GenerateInput{
		Prompt:          req.Prompt,
		Type:            req.Type,
		Stage:           req.Stage,
		PreviousContent: req.PreviousContent,
		SystemPrompt:    req.SystemPrompt,
		Language:        req.Language,
		UserID:          userID,
	}
	if req.ProjectID != "" {
		projectID, err := uuid.Parse(req.ProjectID)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			return
		}
		input.ProjectID = &projectID
	}

	result, err := h.generationService.Generate(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"content":        result.Content,
		"projectId":      result.ProjectID,
		"projectCreated": result.ProjectCreated,
		"mode":           result.Mode,
	})
}
