package auth

// RegisterRequest is the payload of the register service.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// LoginRequest is the payload of the login service.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token"`
}

// UpdateUserRequest changes the caller's name and/or password.
type UpdateUserRequest struct {
	UserID   uint    `json:"user_id"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ValidateTokenRequest asks the auth module to verify a bearer token.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse reports the verification outcome. Failures are
// reported in-band rather than as service errors.
type ValidateTokenResponse struct {
	Valid  bool   `json:"valid"`
	UserID uint   `json:"user_id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// GetUserRequest looks up a user by id.
type GetUserRequest struct {
	UserID uint `json:"user_id"`
}
