package models

// LoginRequest defines the structure for host login requests
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued host token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}
