package constants

// Centralized constants for headers, env keys and route paths.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "LINHTHU_CONFIG"
	EnvDBPath              = "LINHTHU_DB"
	EnvRedisAddr           = "REDIS_ADDR"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Session / Cookie names
	CookieSessionName = "lt_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteSpecies            = "/species"
	RouteCaptureItems       = "/capture-items"
	RouteLeaderboard        = "/leaderboard"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RouteTrainerStats       = "/trainer-stats"
	RouteBattles            = "/battles"
	RouteBattleByCode       = "/battles/:battleCode"
	RouteBattleAction       = "/battles/:battleCode/action"
	RouteVersion            = "/version"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrMissingGoogleEnv       = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrInvalidBattleCode      = "Invalid battle code"
	ErrBattleNotFound         = "Battle not found"
	ErrFailedFetchSpecies     = "Failed to fetch species"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedEncodeBattle     = "Failed to encode battle"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrEmailRequired          = "email is required"

	ErrFailedCreateBattle   = "Failed to create battle"
	ErrPartySizeRange       = "party must contain between 1 and 3 species"
	ErrUnknownSpecies       = "unknown species in party"
	ErrFailedUpdateBattle   = "Failed to update battle"
	ErrNotYourBattle        = "Battle belongs to another trainer"
	ErrBattleNotInProgress  = "Battle is not in progress"
	ErrFailedStoreAction    = "Failed to store action"
	ErrUnknownCaptureItem   = "Unknown capture item"
	ErrActionRejected       = "Action rejected"
	ErrFailedFetchItems     = "Failed to fetch capture items"
	ErrTrainerNameInvalid   = "Invalid trainer name"
	ErrFailedUpdateProfile  = "Failed to update trainer profile"
	ErrFailedExchangeToken  = "Failed to exchange token"
	ErrFailedGetUserInfo    = "Failed to get user info"
	ErrFailedReadUserData   = "Failed to read user data: %s"
	ErrNoEmailInProfile     = "No email in Google profile"
	ErrFailedCreateSession  = "Failed to create session"
	ErrAuthRequired         = "Authentication required"
	ErrInvalidSession       = "Invalid session"
)

// Logging field names
const (
	LogFieldBattleID   = "battle_id"
	LogFieldBattleCode = "battle_code"
	LogFieldTrainer    = "trainer"
	LogFieldSpecies    = "species"
	LogFieldAddr       = "addr"
	LogFieldState      = "state"
)
