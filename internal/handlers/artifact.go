package handlers

import (
	"fmt"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/irondev/iron-dev-agent/internal/dto"
	apierrors "github.com/irondev/iron-dev-agent/internal/errors"
	"github.com/irondev/iron-dev-agent/internal/middleware"
	"github.com/irondev/iron-dev-agent/internal/services"
)

type ArtifactHandler struct {
	artifactService *services.ArtifactService
}

func NewArtifactHandler(artifactService *services.ArtifactService) *ArtifactHandler {
	return &ArtifactHandler{artifactService: artifactService}
}

// UpdateArtifact overwrites the content of one (stage, type) slot
func (h *ArtifactHandler) UpdateArtifact(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, ok := middleware.GetProjectID(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	var req dto.UpdateArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	artifact, err := h.artifactService.UpdateArtifact(projectID, userID, c.Param("stage"), c.Param("type"), req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Artifact updated successfully",
		"artifact": artifact,
	})
}

// GetArtifact returns {content, lastUpdated} of one slot
func (h *ArtifactHandler) GetArtifact(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, ok := middleware.GetProjectID(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	_, artifact, err := h.artifactService.GetArtifact(projectID, userID, c.Param("stage"), c.Param("type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"artifact": artifact,
	})
}

// DownloadArtifact serves the slot content as a file attachment
func (h *ArtifactHandler) DownloadArtifact(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, ok := middleware.GetProjectID(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	slot, artifact, err := h.artifactService.GetArtifact(projectID, userID, c.Param("stage"), c.Param("type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	data := []byte(artifact.Content)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", slot.FileName()))
	c.Data(http.StatusOK, mimetype.Detect(data).String(), data)
}
