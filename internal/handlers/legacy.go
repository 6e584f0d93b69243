package handlers

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/irondev/iron-dev-agent/internal/constants"
	"github.com/irondev/iron-dev-agent/internal/dto"
	apierrors "github.com/irondev/iron-dev-agent/internal/errors"
	"github.com/irondev/iron-dev-agent/internal/services"
)

// LegacyHandler serves the basic-auth flat-file surface.
type LegacyHandler struct {
	legacyService *services.LegacyService
	log           *zap.Logger
}

func NewLegacyHandler(legacyService *services.LegacyService, log *zap.Logger) *LegacyHandler {
	return &LegacyHandler{legacyService: legacyService, log: log}
}

func (h *LegacyHandler) ListProjects(c *gin.Context) {
	projects, err := h.legacyService.ListProjects()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"projects": projects,
	})
}

func (h *LegacyHandler) GetProject(c *gin.Context) {
	project, err := h.legacyService.GetProject(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": project,
	})
}

func (h *LegacyHandler) DeleteProject(c *gin.Context) {
	if err := h.legacyService.DeleteProject(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project deleted successfully",
	})
}

// Generate is the batch /api/claude endpoint. Without a projectId the
// session's current project is used; the result's project becomes current.
func (h *LegacyHandler) Generate(c *gin.Context) {
	input, ok := h.bindGenerate(c)
	if !ok {
		return
	}

	result, err := h.legacyService.Generate(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.rememberProject(c, result.ProjectID)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"content":   result.Content,
		"projectId": result.ProjectID,
	})
}

// streamFrame is one server-sent event payload.
type streamFrame struct {
	Type      string `json:"type"`
	ProjectID string `json:"projectId,omitempty"`
	Content   string `json:"content,omitempty"`
	Error     string `json:"error,omitempty"`
}

// GenerateStream is /api/claude/stream. The model call is detached from the
// client connection: a disconnect stops delivery, not generation, and the
// result is still written to disk.
func (h *LegacyHandler) GenerateStream(c *gin.Context) {
	input, ok := h.bindGenerate(c)
	if !ok {
		return
	}

	started := false
	onStart := func(projectID string) {
		h.rememberProject(c, projectID)

		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)
		started = true

		h.writeFrame(c, streamFrame{Type: "init", ProjectID: projectID})
	}
	onChunk := func(chunk string) error {
		h.writeFrame(c, streamFrame{Type: "chunk", Content: chunk})
		return nil
	}

	ctx := context.WithoutCancel(c.Request.Context())
	result, err := h.legacyService.GenerateStream(ctx, input, onStart, onChunk)
	if err != nil {
		if !started {
			respondServiceError(c, err)
			return
		}
		h.log.Error("legacy stream failed", zap.Error(err))
		h.writeFrame(c, streamFrame{Type: "error", Error: err.Error()})
		return
	}

	h.writeFrame(c, streamFrame{Type: "done", Content: result.Content, ProjectID: result.ProjectID})
}

func (h *LegacyHandler) bindGenerate(c *gin.Context) (services.LegacyGenerateInput, bool) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return services.LegacyGenerateInput{}, false
	}

	projectID := req.ProjectID
	if projectID == "" {
		if current, ok := sessions.Default(c).Get(constants.SessionKeyCurrentProject).(string); ok {
			projectID = current
		}
	}

	return services.LegacyGenerateInput{
		Prompt:          req.Prompt,
		Type:            req.Type,
		ProjectID:       projectID,
		Stage:           req.Stage,
		PreviousContent: req.PreviousContent,
		SystemPrompt:    req.SystemPrompt,
		Language:        req.Language,
	}, true
}

func (h *LegacyHandler) rememberProject(c *gin.Context, projectID string) {
	session := sessions.Default(c)
	session.Set(constants.SessionKeyCurrentProject, projectID)
	if err := session.Save(); err != nil {
		h.log.Warn("failed to save legacy session", zap.Error(err))
	}
}

// writeFrame sends one unnamed event. The payload is pre-encoded so the
// renderer writes it as-is. Write errors are ignored; the client may have gone away.
func (h *LegacyHandler) writeFrame(c *gin.Context, frame streamFrame) {
	payload, err := sonic.Marshal(frame)
	if err != nil {
		h.log.Error("failed to encode stream frame", zap.Error(err))
		return
	}

	c.SSEvent("", payload)
	c.Writer.Flush()
}
