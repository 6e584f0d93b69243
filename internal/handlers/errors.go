package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/irondev/iron-dev-agent/internal/artifacts"
	"github.com/irondev/iron-dev-agent/internal/constants"
	apierrors "github.com/irondev/iron-dev-agent/internal/errors"
	"github.com/irondev/iron-dev-agent/internal/legacy"
	"github.com/irondev/iron-dev-agent/internal/services"
)

func respondServiceError(c *gin.Context, err error) {
	var genErr *services.GenerationError
	switch {
	case errors.As(err, &genErr):
		apierrors.GenerationFailed(c, genErr.Error())

	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidProjectName),
		errors.Is(err, services.ErrInvalidProjectStatus),
		errors.Is(err, services.ErrInvalidStage),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrCannotRemoveOwner),
		errors.Is(err, services.ErrContentRequired),
		errors.Is(err, services.ErrPromptRequired),
		errors.Is(err, services.ErrTypeRequired),
		errors.Is(err, services.ErrStageMismatch),
		errors.Is(err, artifacts.ErrInvalidSlot),
		errors.Is(err, artifacts.ErrUnknownKind),
		errors.Is(err, legacy.ErrInvalidID):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrWrongPassword):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrProjectForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInsufficientRole):
		apierrors.InsufficientPermissions(c, err.Error())

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrCollaboratorNotFound),
		errors.Is(err, services.ErrArtifactNotFound),
		errors.Is(err, legacy.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyCollaborator):
		apierrors.AlreadyExists(c, err.Error())

	case errors.Is(err, services.ErrGeneratorNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())

	case errors.Is(err, services.ErrFailedToHashPassword),
		errors.Is(err, services.ErrFailedToCreateUser):
		apierrors.InternalError(c, err.Error())
	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "Internal server error")
	}
}
