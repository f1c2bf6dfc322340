package models

import "errors"

// Credentials is the login form payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterData is the registration form payload.
type RegisterData struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone"`
	MembershipID string `json:"membershipId,omitempty"`
}

// ForgotPasswordData requests a password reset for Email.
type ForgotPasswordData struct {
	Email string `json:"email"`
}

// ResetPasswordData completes a reset with the token the user received.
type ResetPasswordData struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// AuthPayload is the data of a successful login or registration.
type AuthPayload struct {
	User         User   `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

func (p *AuthPayload) Validate() error {
	if err := p.User.Validate(); err != nil {
		return err
	}
	if p.Token == "" {
		return errors.New("token is missing")
	}
	return nil
}

// TokenPair is the data of a successful token refresh.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

func (p *TokenPair) Validate() error {
	if p.Token == "" {
		return errors.New("token is missing")
	}
	return nil
}

// RefreshRequest is the body of a token refresh call.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
