package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-delivery/models"
	"food-delivery/utils"

	log "github.com/sirupsen/logrus"
)

type UserService struct {
	users  UserStore
	tokens RefreshTokenStore
}

func NewUserService(users UserStore, tokens RefreshTokenStore) *UserService {
	return &UserService{users: users, tokens: tokens}
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.NotFound("User not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetMe(ctx context.Context, actor models.Actor) (*models.User, error) {
	return s.GetUser(ctx, actor.ID)
}

func (s *UserService) UpdateMe(ctx context.Context, actor models.Actor, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.ProfileImageURL != nil {
		user.ProfileImageURL = req.ProfileImageURL
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, actor models.Actor, req models.ChangePasswordRequest) error {
	if err := models.Validate(req); err != nil {
		return err
	}

	user, err := s.GetUser(ctx, actor.ID)
	if err != nil {
		return err
	}

	valid, err := utils.VerifyPassword(user.PasswordHash, req.CurrentPassword)
	if err != nil || !valid {
		return models.BadRequest("Current password is incorrect")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.tokens.RevokeAllForUser(ctx, user.ID); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to revoke refresh tokens after password change")
	}
	return nil
}

func (s *UserService) ListUsers(ctx context.Context, page models.Page) ([]models.User, int, error) {
	users, total, err := s.users.List(ctx, page.Normalize())
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actor models.Actor, id int64) error {
	if actor.ID == id {
		return models.BadRequest("You cannot delete your own account")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return models.NotFound("User not found")
		}
		return fmt.Errorf("delete user: %w", err)
	}
	log.WithFields(log.Fields{"user_id": id, "admin_id": actor.ID}).Info("User deleted")
	return nil
}

func (s *UserService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	stats, err := s.users.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	return stats, nil
}
