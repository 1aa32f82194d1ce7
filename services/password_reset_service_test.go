package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"food-delivery/models"
	"food-delivery/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resetFixture struct {
	users  *fakeUsers
	resets *fakeResets
	tokens *fakeRefreshTokens
	sender *recordingSender
	svc    *PasswordResetService
}

func newResetFixture() *resetFixture {
	f := &resetFixture{
		users: newFakeUsers(
			&models.User{ID: 1, PhoneNumber: "01011112222", Email: strPtr("kim@example.com"), IsActive: true},
			&models.User{ID: 2, PhoneNumber: "01033334444", IsActive: true},
		),
		resets: &fakeResets{},
		tokens: newFakeRefreshTokens(),
		sender: &recordingSender{},
	}
	f.svc = NewPasswordResetService(f.users, f.resets, f.tokens, f.sender, false)
	f.svc.newCode = func() (string, error) { return "1234", nil }
	return f
}

func TestPasswordResetFlow(t *testing.T) {
	f := newResetFixture()
	ctx := context.Background()
	require.NoError(t, f.tokens.Save(ctx, &models.RefreshToken{UserID: 1, Token: "old", ExpiresAt: time.Now().Add(time.Hour)}))

	require.NoError(t, f.svc.RequestReset(ctx, models.PasswordResetRequest{PhoneNumber: "01011112222"}))
	assert.Equal(t, "1234", f.sender.codes["kim@example.com"])

	verified, err := f.svc.VerifyCode(ctx, models.VerifyResetCodeRequest{PhoneNumber: "01011112222", Code: "1234"})
	require.NoError(t, err)
	require.NotEmpty(t, verified.ResetToken)

	_, err = f.svc.VerifyCode(ctx, models.VerifyResetCodeRequest{PhoneNumber: "01011112222", Code: "1234"})
	requireAppError(t, err, http.StatusBadRequest, models.CodeBadRequest)

	require.NoError(t, f.svc.ResetPassword(ctx, models.ResetPasswordRequest{ResetToken: verified.ResetToken, NewPassword: "brand-new"}))

	ok, err := utils.VerifyPassword(f.users.byID[1].PasswordHash, "brand-new")
	require.NoError(t, err)
	assert.True(t, ok)

	old, err := f.tokens.FindByToken(ctx, "old")
	require.NoError(t, err)
	assert.True(t, old.Revoked, "refresh tokens are revoked after a reset")

	err = f.svc.ResetPassword(ctx, models.ResetPasswordRequest{ResetToken: verified.ResetToken, NewPassword: "again-new"})
	requireAppError(t, err, http.StatusBadRequest, models.CodeBadRequest)
}

func TestPasswordResetLocksAfterThreeWrongCodes(t *testing.T) {
	f := newResetFixture()
	ctx := context.Background()
	require.NoError(t, f.svc.RequestReset(ctx, models.PasswordResetRequest{PhoneNumber: "01011112222"}))

	wrong := models.VerifyResetCodeRequest{PhoneNumber: "01011112222", Code: "9999"}
	_, err := f.svc.VerifyCode(ctx, wrong)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 attempts remaining")

	_, err = f.svc.VerifyCode(ctx, wrong)
	assert.Contains(t, err.Error(), "1 attempts remaining")

	_, err = f.svc.VerifyCode(ctx, wrong)
	assert.Contains(t, err.Error(), "Too many attempts")

	_, err = f.svc.VerifyCode(ctx, models.VerifyResetCodeRequest{PhoneNumber: "01011112222", Code: "1234"})
	requireAppError(t, err, http.StatusBadRequest, models.CodeBadRequest)
	assert.Contains(t, err.Error(), "Too many attempts")

	require.NoError(t, f.svc.RequestReset(ctx, models.PasswordResetRequest{PhoneNumber: "01011112222"}))
	_, err = f.svc.VerifyCode(ctx, models.VerifyResetCodeRequest{PhoneNumber: "01011112222", Code: "1234"})
	assert.NoError(t, err, "a new request starts over")
}

func TestPasswordResetExpiredCode(t *testing.T) {
	f := newResetFixture()
	ctx := context.Background()
	require.NoError(t, f.svc.RequestReset(ctx, models.PasswordResetRequest{PhoneNumber: "01011112222"}))

	f.svc.now = func() time.Time { return time.Now().Add(16 * time.Minute) }
	_, err := f.svc.VerifyCode(ctx, models.VerifyResetCodeRequest{PhoneNumber: "01011112222", Code: "1234"})
	requireAppError(t, err, http.StatusBadRequest, models.CodeBadRequest)
	assert.Contains(t, err.Error(), "expired")
}

func TestPasswordResetDelivery(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown phone", func(t *testing.T) {
		f := newResetFixture()
		err := f.svc.RequestReset(ctx, models.PasswordResetRequest{PhoneNumber: "01000000000"})
		requireAppError(t, err, http.StatusNotFound, models.CodeNotFound)
	})

	t.Run("user without email still gets a code stored", func(t *testing.T) {
		f := newResetFixture()
		require.NoError(t, f.svc.RequestReset(ctx, models.PasswordResetRequest{PhoneNumber: "01033334444"}))
		assert.Empty(t, f.sender.codes)
		code, err := f.resets.FindLatestByUser(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "1234", code.Code)
	})

	t.Run("mail failure is reported", func(t *testing.T) {
		f := newResetFixture()
		f.sender.err = errors.New("smtp down")
		err := f.svc.RequestReset(ctx, models.PasswordResetRequest{PhoneNumber: "01011112222"})
		require.Error(t, err)
		_, isApp := models.AsAppError(err)
		assert.False(t, isApp)
	})

	t.Run("verify without request", func(t *testing.T) {
		f := newResetFixture()
		_, err := f.svc.VerifyCode(ctx, models.VerifyResetCodeRequest{PhoneNumber: "01011112222", Code: "1234"})
		requireAppError(t, err, http.StatusBadRequest, models.CodeBadRequest)
	})

	t.Run("unknown reset token", func(t *testing.T) {
		f := newResetFixture()
		err := f.svc.ResetPassword(ctx, models.ResetPasswordRequest{ResetToken: "6f1c1a3e-8d0b-4c9e-9a53-0e7f1f2d3c4b", NewPassword: "brand-new"})
		requireAppError(t, err, http.StatusBadRequest, models.CodeBadRequest)
	})
}
