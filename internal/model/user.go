package model

// User represents the authenticated user as cached in the session store.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the backend's authentication response.
// Type is the token scheme, always "Bearer".
type AuthResponse struct {
	Token    string `json:"token"`
	Type     string `json:"type"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// User returns the user identity carried by the auth response.
func (r AuthResponse) User() User {
	return User{Username: r.Username, Email: r.Email}
}
