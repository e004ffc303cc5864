package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"englishhub/backend/apperr"
	"englishhub/backend/config"
	"englishhub/backend/models"
	"englishhub/backend/repository"
	"englishhub/backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

const (
	msgMissingToken    = "token not found, please log in first"
	msgInvalidToken    = "invalid token"
	msgExpiredToken    = "token expired, please log in again"
	msgUserNotFound    = "user not found"
	msgBadCredentials  = "invalid email or password"
	msgEmailRegistered = "email already registered"
)

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type AuthService struct {
	store  *repository.Store
	cfg    *config.Config
	logger *utils.Logger
}

func NewAuthService(store *repository.Store, cfg *config.Config, logger *utils.Logger) *AuthService {
	return &AuthService{store: store, cfg: cfg, logger: logger}
}

// Register creates the user together with its zeroed stats row.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, apperr.Validation("name, email and password are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperr.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	if _, err := s.store.Users.GetByEmail(ctx, nil, in.Email); err == nil {
		return nil, apperr.Conflict(msgEmailRegistered)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Name: in.Name, Email: in.Email, Password: string(hash)}
	err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.store.Users.Create(ctx, tx, &user); err != nil {
			return err
		}
		_, err := s.store.Stats.Ensure(ctx, tx, user.ID)
		return err
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperr.Conflict(msgEmailRegistered)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return s.issue(&user)
}

// Login answers the same error for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	user, err := s.store.Users.GetByEmail(ctx, nil, in.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Auth(msgBadCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, apperr.Auth(msgBadCredentials)
	}
	return s.issue(user)
}

// VerifyToken resolves an Authorization header value to a live user.
func (s *AuthService) VerifyToken(ctx context.Context, header string) (*Identity, error) {
	token, err := utils.ExtractBearerToken(header)
	if err != nil {
		return nil, apperr.Auth(msgMissingToken)
	}

	claims, err := utils.ParseJWTToken(token, s.cfg)
	if errors.Is(err, utils.ErrExpiredToken) {
		return nil, apperr.Auth(msgExpiredToken)
	}
	if err != nil {
		return nil, apperr.Auth(msgInvalidToken)
	}

	user, err := s.store.Users.GetByID(ctx, nil, claims.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Auth(msgUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load token user: %w", err)
	}

	return &Identity{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.store.Users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, notFoundOr(err, msgUserNotFound, "load profile")
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateJWTToken(user.ID, user.Email, user.Name, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}
