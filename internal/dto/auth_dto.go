package dto

import "github.com/ahmetcoskunkizilkaya/bond-keeper/internal/identity"

type GoogleSignInRequest struct {
	Credential string `json:"credential"`
}

// SignInRequest carries an identity the host shell already decoded.
type SignInRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

func (r *SignInRequest) Validate() error {
	if r.ID == "" {
		return validationError("id is required")
	}
	return nil
}

func (r *SignInRequest) Identity() identity.Identity {
	return identity.Identity{ID: r.ID, Name: r.Name, Email: r.Email, Picture: r.Picture}
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

func NewUserResponse(id identity.Identity) UserResponse {
	return UserResponse{ID: id.ID, Name: id.Name, Email: id.Email, Picture: id.Picture}
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	Storage       string `json:"storage"`
	StorageDriver string `json:"storage_driver"`
	Notifications bool   `json:"notifications"`
}
