package dto

// Data Transfer Objects for the confirmation-code authentication flow

// SignUpRequest: payload for requesting a confirmation code. No password
// anywhere, the emailed code is the credential.
type SignUpRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email"`
}

// SignUpResponse echoes the registered pair back.
type SignUpResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest: exchange a confirmation code for an access token.
type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse carries the signed access token.
type TokenResponse struct {
	Token string `json:"token"`
}
