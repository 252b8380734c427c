package constants

const (
	// ContextKeyUser is the gin context key holding the authenticated user.
	ContextKeyUser = "current_user"

	// TokenTypeBearer is the token_type value returned by the token endpoint.
	TokenTypeBearer = "bearer"

	MaxUsernameLength     = 30
	MaxProjectTitleLength = 30
	MaxTaskTitleLength    = 255
)
