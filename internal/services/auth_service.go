package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/bluenote/backend/internal/models"
	"github.com/bluenote/backend/internal/repositories"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const tokenBytes = 16

// maxPasswordBytes is the longest input bcrypt accepts
const maxPasswordBytes = 72

var ErrPasswordTooLong = NewValidationError("password must be at most 72 bytes")

// AuthService handles signup, login, logout and token resolution
type AuthService struct {
	users    repositories.UserRepository
	sessions repositories.SessionRepository
	codes    *VerificationService
	log      zerolog.Logger
}

func NewAuthService(users repositories.UserRepository, sessions repositories.SessionRepository, codes *VerificationService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, codes: codes, log: log}
}

// Authenticate resolves a bearer token to its user
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	session, err := s.sessions.GetSessionByToken(ctx, token)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByUsername(ctx, session.Username)
	if errors.Is(err, repositories.ErrNotFound) {
		s.log.Warn().Str("username", session.Username).Msg("session references a missing user")
		return nil, ErrSessionUserMissing
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Signup consumes the verification code and registers a new user
func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest) error {
	if len(req.Password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	if err := s.codes.CheckCode(ctx, req.CodeID, req.Code); err != nil {
		return err
	}

	_, err := s.users.GetUserByUsername(ctx, req.Username)
	if err == nil {
		return ErrUserAlreadyExists
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	err = s.users.CreateUser(ctx, &models.User{Username: req.Username, Password: string(hash)})
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return ErrUserAlreadyExists
	}
	return err
}

// Login consumes the verification code, checks credentials and opens a session
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginData, error) {
	if err := s.codes.CheckCode(ctx, req.CodeID, req.Code); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByUsername(ctx, req.Username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrCredentialMismatch
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrCredentialMismatch
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	if err := s.sessions.CreateSession(ctx, &models.Session{Token: token, Username: user.Username}); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return &models.LoginData{Message: "login success", Username: user.Username, Token: token}, nil
}

// Logout ends the session bound to token
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	return s.sessions.DeleteSession(ctx, token)
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
