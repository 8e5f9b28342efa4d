package dto

// LoginRequest represents the JSON request body for the login endpoint.
//
// @Description Request to authenticate a user
// @Example {"email": "user@example.com", "password": "password123"}
type LoginRequest struct {
	// Email is the user's email address.
	Email string `json:"email" binding:"required,email" example:"user@example.com"`
	// Password is the user's password.
	Password string `json:"password" binding:"required,min=6" example:"password123"`
} // @name LoginRequest

// RegisterRequest represents the JSON request body for the register endpoint.
//
// @Description Request to register a new user
// @Example {"email": "user@example.com", "password": "password123", "name": "Jane Doe"}
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"password123"`
	Name     string `json:"name,omitempty" binding:"max=100" example:"Jane Doe"`
} // @name RegisterRequest

// LoginResponse represents the JSON response body for the login and register endpoints.
//
// @Description Successful authentication response with a JWT access token
type LoginResponse struct {
	// Token is the JWT access token.
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64        `json:"expires_in" example:"900"`
	User      UserResponse `json:"user"`
} // @name LoginResponse

// Claims represents the identity carried in a JWT.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// UserResponse represents user information in API responses.
type UserResponse struct {
	ID    string `json:"id" example:"65b2f0c8e4b0a1a2b3c4d5e6"`
	Email string `json:"email" example:"user@example.com"`
	Name  string `json:"name,omitempty" example:"Jane Doe"`
} // @name UserResponse

// Validate performs custom validation on the login request.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if len(r.Password) < 6 {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	return nil
}

// Validate performs custom validation on the register request.
func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if len(r.Password) < 6 {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	// bcrypt ignores everything past 72 bytes
	if len(r.Password) > 72 {
		return &ValidationError{Field: "password", Message: "password must be at most 72 bytes"}
	}
	return nil
}
