package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/irondev/iron-dev-agent/internal/constants"
	apierrors "github.com/irondev/iron-dev-agent/internal/errors"
	"github.com/irondev/iron-dev-agent/internal/models"
	"github.com/irondev/iron-dev-agent/internal/services"
)

// ProjectAuthorizer resolves the caller's membership in a project.
type ProjectAuthorizer interface {
	Authorize(projectID uuid.UUID, userID uint64) (*models.ProjectCollaborator, error)
}

// RequireProjectAccess checks if the user is a collaborator on the project in :id
func RequireProjectAccess(projects ProjectAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		projectID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			// Malformed IDs get the same answer as foreign ones
			apierrors.Forbidden(c, services.ErrProjectForbidden.Error())
			c.Abort()
			return
		}

		member, err := projects.Authorize(projectID, userID)
		if err != nil {
			if errors.Is(err, services.ErrProjectForbidden) {
				apierrors.Forbidden(c, err.Error())
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, projectID)
		c.Set(constants.ContextKeyCollaborator, member)
		c.Next()
	}
}

// RequireProjectRole allows only the given collaborator roles. It must run
// after RequireProjectAccess.
func RequireProjectRole(roles ...models.CollaboratorRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		member, ok := GetCollaborator(c)
		if !ok {
			apierrors.Forbidden(c, "Project access required")
			c.Abort()
			return
		}

		for _, role := range roles {
			if member.Role == role {
				c.Next()
				return
			}
		}

		apierrors.InsufficientPermissions(c, services.ErrInsufficientRole.Error())
		c.Abort()
	}
}

// GetProjectID returns the project ID validated by RequireProjectAccess
func GetProjectID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// GetCollaborator returns the caller's membership loaded by RequireProjectAccess
func GetCollaborator(c *gin.Context) (*models.ProjectCollaborator, bool) {
	value, exists := c.Get(constants.ContextKeyCollaborator)
	if !exists {
		return nil, false
	}
	member, ok := value.(*models.ProjectCollaborator)
	return member, ok
}
