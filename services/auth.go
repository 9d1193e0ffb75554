// Package services contains the typed feature services of the CareLink
// backend. Each service is a thin caller over a shared *carelink.Client:
// it supplies an endpoint, a method, and optional typed bodies, and leaves
// auth, retries, and error classification to the client.
//
// This file defines the authentication service: login, registration,
// logout, and profile retrieval.
package services

import (
	"context"
	"net/http"

	carelink "github.com/carelink/carelink-go"
)

// Session is the backend's answer to login and register.
type Session struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

// LoginRequest is the wire body of POST /auth/login.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// RegisterRequest is the wire body of POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AuthService owns the session lifecycle.
//
// Contract:
//   - Login/Register: authenticate and install the returned token pair on
//     the client, so every subsequent call is sent as that user.
//   - Logout: best-effort server notification; credentials are cleared
//     locally regardless of the server's answer.
//   - Profile: fetch the authenticated user.
type AuthService struct {
	api *carelink.Client
}

// NewAuthService binds an AuthService to the given client.
func NewAuthService(api *carelink.Client) *AuthService {
	return &AuthService{api: api}
}

// Login authenticates with email and password and installs the session's
// token pair on the client.
func (s *AuthService) Login(ctx context.Context, email, password string, rememberMe bool) (*Session, error) {
	var sess Session
	body := LoginRequest{Email: email, Password: password, RememberMe: rememberMe}
	if err := s.api.Request(ctx, http.MethodPost, carelink.EndpointAuthLogin, body, &sess); err != nil {
		return nil, err
	}
	s.api.SetCredentials(sess.AccessToken, sess.RefreshToken)
	return &sess, nil
}

// Register creates an account and installs the returned session.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	var sess Session
	if err := s.api.Request(ctx, http.MethodPost, carelink.EndpointAuthRegister, req, &sess); err != nil {
		return nil, err
	}
	s.api.SetCredentials(sess.AccessToken, sess.RefreshToken)
	return &sess, nil
}

// Logout tells the server to revoke the session and clears local
// credentials. Clearing happens even when the server call fails; the
// returned error reports the server-side outcome.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.api.Request(ctx, http.MethodPost, carelink.EndpointAuthLogout, nil, nil)
	s.api.ClearCredentials()
	return err
}

// Profile fetches the authenticated user.
func (s *AuthService) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := s.api.Request(ctx, http.MethodGet, carelink.EndpointAuthProfile, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
