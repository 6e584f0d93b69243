// Package server assembles the HTTP routes.
package server

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/irondev/iron-dev-agent/internal/config"
	"github.com/irondev/iron-dev-agent/internal/constants"
	"github.com/irondev/iron-dev-agent/internal/handlers"
	"github.com/irondev/iron-dev-agent/internal/middleware"
	"github.com/irondev/iron-dev-agent/internal/models"
)

type RouterDeps struct {
	Config       *config.Config
	Log          *zap.Logger
	SessionStore sessions.Store

	Tokens   middleware.TokenParser
	Users    middleware.UserLoader
	Projects middleware.ProjectAuthorizer

	AuthHandler     *handlers.AuthHandler
	ProjectHandler  *handlers.ProjectHandler
	ArtifactHandler *handlers.ArtifactHandler
	AIHandler       *handlers.AIHandler
	LegacyHandler   *handlers.LegacyHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ZapLogger(d.Log))
	r.Use(sessions.Sessions(constants.SessionCookieName, d.SessionStore))

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Iron Dev Agent API is running",
		})
	})

	protect := middleware.Protect(d.Tokens, d.Users)
	projectAccess := middleware.RequireProjectAccess(d.Projects)
	managers := middleware.RequireProjectRole(models.CollaboratorRoleOwner, models.CollaboratorRoleAdmin)
	owner := middleware.RequireProjectRole(models.CollaboratorRoleOwner)
	basic := middleware.BasicAuth(d.Config.LegacyUsername, d.Config.LegacyPassword)

	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.AuthHandler.Register)
			auth.POST("/login", d.AuthHandler.Login)
			auth.GET("/profile", protect, d.AuthHandler.GetProfile)
			auth.PUT("/profile", protect, d.AuthHandler.UpdateProfile)
			auth.PUT("/password", protect, d.AuthHandler.ChangePassword)
		}

		// Project routes. List, get and delete are shared with basic-auth clients.
		projects := api.Group("/projects")
		{
			projects.POST("", protect, d.ProjectHandler.CreateProject)
			projects.GET("",
				middleware.WhenBasicAuth(basic, d.LegacyHandler.ListProjects),
				protect, d.ProjectHandler.ListProjects)
			projects.GET("/:id",
				middleware.WhenBasicAuth(basic, d.LegacyHandler.GetProject),
				protect, projectAccess, d.ProjectHandler.GetProject)
			projects.PUT("/:id", protect, projectAccess, managers, d.ProjectHandler.UpdateProject)
			projects.DELETE("/:id",
				middleware.WhenBasicAuth(basic, d.LegacyHandler.DeleteProject),
				protect, projectAccess, owner, d.ProjectHandler.DeleteProject)

			projects.POST("/:id/collaborators", protect, projectAccess, managers, d.ProjectHandler.AddCollaborator)
			projects.DELETE("/:id/collaborators/:userId", protect, projectAccess, d.ProjectHandler.RemoveCollaborator)

			projects.PUT("/:id/artifacts/:stage/:type", protect, projectAccess, d.ArtifactHandler.UpdateArtifact)
			projects.GET("/:id/artifacts/:stage/:type", protect, projectAccess, d.ArtifactHandler.GetArtifact)
			projects.GET("/:id/artifacts/:stage/:type/download", protect, projectAccess, d.ArtifactHandler.DownloadArtifact)
		}

		api.POST("/ai/generate", protect, d.AIHandler.Generate)

		// Legacy generation
		api.POST("/claude", basic, d.LegacyHandler.Generate)
		api.POST("/claude/stream", basic, d.LegacyHandler.GenerateStream)
	}

	return r
}
