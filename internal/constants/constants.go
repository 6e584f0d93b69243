package constants

const (
	// ContextKeyUserID is the gin context key holding the authenticated user's ID.
	ContextKeyUserID = "user_id"
	// ContextKeyUser is the gin context key holding the authenticated models.User.
	ContextKeyUser = "user"
	// ContextKeyProject holds the project loaded by RequireProjectAccess.
	ContextKeyProject = "project"
	// ContextKeyCollaborator holds the caller's membership loaded by RequireProjectAccess.
	ContextKeyCollaborator = "project_collaborator"
	// ContextKeyLegacyUser is set by BasicAuth.
	ContextKeyLegacyUser = "legacy_user"

	SessionCookieName = "irondev_session"
	// SessionKeyCurrentProject remembers the legacy client's active project.
	SessionKeyCurrentProject = "current_project_id"

	MinPasswordLength = 6

	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// DefaultProjectName is used when generation runs without a project.
	DefaultProjectName = "New Project"
	// MaxDescriptionRunes bounds the description derived from a prompt.
	MaxDescriptionRunes = 100

	DefaultLanguage = "JavaScript"
)
