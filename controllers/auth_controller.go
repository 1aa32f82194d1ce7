package controllers

import (
	"net/http"

	"food-delivery/models"
	"food-delivery/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth  *services.AuthService
	reset *services.PasswordResetService
}

func NewAuthController(auth *services.AuthService, reset *services.PasswordResetService) *AuthController {
	return &AuthController{auth: auth, reset: reset}
}

// Register godoc
// @Summary Register new user
// @Description Register a client or restaurant owner account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response{data=models.AuthResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := ctrl.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Registration successful", resp)
}

// Login godoc
// @Summary User login
// @Description Login with phone number and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.Response{data=models.AuthResponse}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := ctrl.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Login successful", resp)
}

// Refresh godoc
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair. The old refresh token is revoked.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RefreshTokenRequest true "Refresh Request"
// @Success 200 {object} models.Response{data=models.AuthResponse}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh [post]
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req models.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := ctrl.auth.Refresh(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Token refreshed", resp)
}

// Logout godoc
// @Summary Logout
// @Description Revoke every refresh token of the caller
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := ctrl.auth.Logout(c.Request.Context(), actor); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Logout successful", nil)
}

// RequestPasswordReset godoc
// @Summary Request password reset code
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.PasswordResetRequest true "Phone number"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /auth/password-reset/request [post]
func (ctrl *AuthController) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ctrl.reset.RequestReset(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Reset code sent", nil)
}

// VerifyResetCode godoc
// @Summary Verify password reset code
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.VerifyResetCodeRequest true "Code"
// @Success 200 {object} models.Response{data=models.VerifyResetCodeResponse}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/password-reset/verify [post]
func (ctrl *AuthController) VerifyResetCode(c *gin.Context) {
	var req models.VerifyResetCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := ctrl.reset.VerifyCode(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Code verified", resp)
}

// ResetPassword godoc
// @Summary Set a new password with a reset token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.ResetPasswordRequest true "New password"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/password-reset/confirm [post]
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ctrl.reset.ResetPassword(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Password has been reset", nil)
}
