package authsdk

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the wire shape of every rejected request.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	UserMessage      string `json:"user_message"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenResponse is returned by POST /oauth/token for both grants.
type TokenResponse struct {
	// AccessToken is the signed JWT used as a bearer credential
	AccessToken string `json:"access_token"`

	// RefreshToken is only present when the refresh cookie is disabled;
	// otherwise it travels in the refreshToken cookie.
	RefreshToken string `json:"refresh_token,omitempty"`

	// TokenType is always "bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	// Scope is the space-delimited list of scopes granted to this token
	Scope string `json:"scope,omitempty"`

	// JTI is the access token id
	JTI string `json:"jti,omitempty"`
}

// ============================================================================
// Resource Types
// ============================================================================

// Category is the ledger category resource.
type Category struct {
	Code int64  `json:"codigo"`
	Name string `json:"nome"`
}

// CreateCategoryRequest is the body of POST /categorias.
type CreateCategoryRequest struct {
	Name string `json:"nome"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz on the ops listener.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the dependencies /readyz probes.
type HealthChecks struct {
	Database    string `json:"database"`
	ReplayStore string `json:"replay_store"`
}
