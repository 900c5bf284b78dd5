package model

// Stable error codes. Handlers never let exceptions cross the MCP
// boundary: every failure is translated into one of these codes inside
// an AdapterResult or a gateway-level error envelope.
const (
	CodePlatformNotSupported   = "PLATFORM_NOT_SUPPORTED"
	CodeUnknownTool            = "UNKNOWN_TOOL"
	CodeRoutingError           = "ROUTING_ERROR"
	CodePlatformError          = "PLATFORM_ERROR"
	CodeInternalError          = "INTERNAL_ERROR"
	CodeESPNAuthRequired       = "ESPN_AUTH_REQUIRED"
	CodeESPNCredentialsNotFound = "ESPN_CREDENTIALS_NOT_FOUND"
	CodeESPNCookiesExpired     = "ESPN_COOKIES_EXPIRED"
	CodeESPNAuthFailed         = "ESPN_AUTH_FAILED"
	CodeESPNAccessDenied       = "ESPN_ACCESS_DENIED"
	CodeESPNNotFound           = "ESPN_NOT_FOUND"
	CodeESPNRateLimit          = "ESPN_RATE_LIMIT"
	CodeESPNAPIError           = "ESPN_API_ERROR"
	CodeESPNInvalidResponse    = "ESPN_INVALID_RESPONSE"
	CodeTeamIDMissing          = "TEAM_ID_MISSING"
	CodeLimitExceeded          = "LIMIT_EXCEEDED"
	CodeAuthFailed             = "AUTH_FAILED"
	CodeAuthMissing            = "AUTH_MISSING"
	CodeCredentialsMissing     = "CREDENTIALS_MISSING"
	CodeSportNotSupported      = "SPORT_NOT_SUPPORTED"
	CodeValidationError        = "VALIDATION_ERROR"
)
