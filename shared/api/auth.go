package api

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Response DTOs

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// ErrorResponse is the backend's error body, e.g. a rejected signup.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
