package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-delivery/models"
	"food-delivery/utils"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	resetCodeDigits      = 4
	resetCodeTTL         = 15 * time.Minute
	resetCodeMaxAttempts = 3
)

type PasswordResetService struct {
	users     UserStore
	resets    PasswordResetStore
	tokens    RefreshTokenStore
	sender    CodeSender
	revealLog bool
	now       func() time.Time
	newCode   func() (string, error)
}

// NewPasswordResetService wires the reset flow. When revealLog is set, codes
// for users without an email address are written to the log so the flow can
// be exercised outside production.
func NewPasswordResetService(users UserStore, resets PasswordResetStore, tokens RefreshTokenStore, sender CodeSender, revealLog bool) *PasswordResetService {
	return &PasswordResetService{
		users:     users,
		resets:    resets,
		tokens:    tokens,
		sender:    sender,
		revealLog: revealLog,
		now:       time.Now,
		newCode: func() (string, error) {
			return utils.GenerateNumericCode(resetCodeDigits)
		},
	}
}

func (s *PasswordResetService) RequestReset(ctx context.Context, req models.PasswordResetRequest) error {
	user, err := s.users.FindByPhone(ctx, strings.TrimSpace(req.PhoneNumber))
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return models.NotFound("User with this phone number not found")
		}
		return fmt.Errorf("load user: %w", err)
	}

	if err := s.resets.DeleteByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("clear reset codes: %w", err)
	}

	code, err := s.newCode()
	if err != nil {
		return err
	}

	reset := &models.PasswordResetCode{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: s.now().Add(resetCodeTTL),
	}
	if err := s.resets.Create(ctx, reset); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	entry := log.WithField("user_id", user.ID)
	switch {
	case user.Email != nil && *user.Email != "" && s.sender != nil:
		if err := s.sender.SendResetCode(ctx, *user.Email, code); err != nil {
			entry.WithError(err).Error("Failed to deliver password reset code")
			return fmt.Errorf("deliver reset code: %w", err)
		}
		entry.Info("Password reset code sent")
	case s.revealLog:
		entry.WithField("code", code).Warn("No delivery channel for password reset code")
	default:
		entry.Warn("No delivery channel for password reset code")
	}
	return nil
}

// VerifyCode checks a code and, on success, returns the one-time token
// that authorizes ResetPassword.
func (s *PasswordResetService) VerifyCode(ctx context.Context, req models.VerifyResetCodeRequest) (*models.VerifyResetCodeResponse, error) {
	user, err := s.users.FindByPhone(ctx, strings.TrimSpace(req.PhoneNumber))
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NotFound("User with this phone number not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	reset, err := s.resets.FindLatestByUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.BadRequest("No password reset was requested")
		}
		return nil, fmt.Errorf("load reset code: %w", err)
	}
	if reset.Used || reset.Verified {
		return nil, models.BadRequest("Reset code was already used")
	}
	if !reset.ExpiresAt.After(s.now()) {
		return nil, models.BadRequest("Reset code has expired")
	}
	if reset.Attempts >= resetCodeMaxAttempts {
		return nil, models.BadRequest("Too many attempts, request a new code")
	}

	if subtle.ConstantTimeCompare([]byte(reset.Code), []byte(req.Code)) != 1 {
		reset.Attempts++
		if err := s.resets.Update(ctx, reset); err != nil {
			return nil, fmt.Errorf("record attempt: %w", err)
		}
		remaining := resetCodeMaxAttempts - reset.Attempts
		if remaining <= 0 {
			return nil, models.BadRequest("Too many attempts, request a new code")
		}
		return nil, models.BadRequest("Invalid code, %d attempts remaining", remaining)
	}

	token := uuid.NewString()
	reset.Verified = true
	reset.ResetToken = &token
	if err := s.resets.Update(ctx, reset); err != nil {
		return nil, fmt.Errorf("mark code verified: %w", err)
	}

	return &models.VerifyResetCodeResponse{ResetToken: token}, nil
}

func (s *PasswordResetService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if err := models.Validate(req); err != nil {
		return err
	}

	reset, err := s.resets.FindByResetToken(ctx, req.ResetToken)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return models.BadRequest("Invalid reset token")
		}
		return fmt.Errorf("load reset token: %w", err)
	}
	if !reset.Verified || reset.Used {
		return models.BadRequest("Invalid reset token")
	}
	if !reset.ExpiresAt.After(s.now()) {
		return models.BadRequest("Reset token has expired")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, reset.UserID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	reset.Used = true
	if err := s.resets.Update(ctx, reset); err != nil {
		return fmt.Errorf("mark reset used: %w", err)
	}
	if err := s.tokens.RevokeAllForUser(ctx, reset.UserID); err != nil {
		log.WithError(err).WithField("user_id", reset.UserID).Warn("Failed to revoke refresh tokens after reset")
	}

	log.WithField("user_id", reset.UserID).Info("Password reset completed")
	return nil
}
