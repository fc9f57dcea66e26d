package model

// UserInfo is the slice of account data persisted alongside the token.
type UserInfo struct {
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	RoleID    int    `json:"role_id,omitempty"`
}

// Session pairs a bearer token with the user it belongs to. The two are
// always set and cleared together.
type Session struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// TokenGrant is the login response.
type TokenGrant struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
