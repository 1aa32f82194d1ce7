package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-delivery/models"
	"food-delivery/utils"

	log "github.com/sirupsen/logrus"
)

type AuthService struct {
	users  UserStore
	tokens RefreshTokenStore
	issuer *utils.TokenIssuer
	now    func() time.Time
}

func NewAuthService(users UserStore, tokens RefreshTokenStore, issuer *utils.TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		issuer: issuer,
		now:    time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(req.PhoneNumber)
	exists, err := s.users.ExistsByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("check phone: %w", err)
	}
	if exists {
		return nil, models.Conflict("Phone number is already registered").WithCode(models.CodePhoneTaken)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleClient
	}

	user := &models.User{
		PhoneNumber:  phone,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.WithFields(log.Fields{"user_id": user.ID, "role": user.Role}).Info("User registered")
	return s.issueTokens(ctx, user)
}

// EnsureAdmin creates the bootstrap ADMIN account when no user owns phone
// yet. It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, phone, password, name string) (bool, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || len(password) < 6 {
		return false, models.BadRequest("Admin phone number and a password of at least 6 characters are required")
	}

	exists, err := s.users.ExistsByPhone(ctx, phone)
	if err != nil {
		return false, fmt.Errorf("check admin phone: %w", err)
	}
	if exists {
		return false, nil
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}

	admin := &models.User{
		PhoneNumber:  phone,
		PasswordHash: hashedPassword,
		Name:         strings.TrimSpace(name),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		// Another instance may have seeded it first.
		if exists, checkErr := s.users.ExistsByPhone(ctx, phone); checkErr == nil && exists {
			return false, nil
		}
		return false, fmt.Errorf("create admin: %w", err)
	}

	log.WithField("user_id", admin.ID).Info("Admin account created")
	return true, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByPhone(ctx, strings.TrimSpace(req.PhoneNumber))
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.Unauthorized("Invalid phone number or password")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	valid, err := utils.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil || !valid {
		return nil, models.Unauthorized("Invalid phone number or password")
	}
	if !user.IsActive {
		return nil, models.Unauthorized("Account is disabled")
	}

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to record last login")
	}
	user.LastLoginAt = &now

	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (s *AuthService) Refresh(ctx context.Context, req models.RefreshTokenRequest) (*models.AuthResponse, error) {
	claims, err := s.issuer.ValidateToken(req.RefreshToken, utils.TokenRefresh)
	if err != nil {
		return nil, models.Unauthorized("Invalid refresh token")
	}

	stored, err := s.tokens.FindByToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.Unauthorized("Refresh token not found")
		}
		return nil, fmt.Errorf("load refresh token: %w", err)
	}
	if stored.Revoked || !stored.ExpiresAt.After(s.now()) {
		return nil, models.Unauthorized("Refresh token expired or revoked")
	}

	userID, _ := claims.UserID()
	if stored.UserID != userID {
		return nil, models.Unauthorized("Invalid refresh token")
	}

	revoked, err := s.tokens.Revoke(ctx, stored.ID)
	if err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}
	if !revoked {
		return nil, models.Unauthorized("Refresh token already used")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.Unauthorized("User not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !user.IsActive {
		return nil, models.Unauthorized("Account is disabled")
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, actor models.Actor) error {
	if err := s.tokens.RevokeAllForUser(ctx, actor.ID); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	log.WithField("user_id", actor.ID).Info("User logged out")
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	accessToken, err := s.issuer.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, expiresAt, err := s.issuer.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Save(ctx, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.issuer.AccessExpiry().Seconds()),
		User:         user,
	}, nil
}
