package dto

// RegisterUserRequest describes the user registration payload.
type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse carries the final, possibly suffixed, username.
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Points   int64  `json:"points"`
}

// SessionRequest describes the credential validation payload.
type SessionRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse reports the credential validation outcome.
type SessionResponse struct {
	Validated bool `json:"validated"`
}

// TokenResponse describes an issued redemption token.
type TokenResponse struct {
	User string `json:"user"`
	Code string `json:"code"`
	Date string `json:"date"`
}
