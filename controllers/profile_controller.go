package controllers

import (
	"fmt"
	"net/http"

	"food-delivery/libs"
	"food-delivery/models"
	"food-delivery/services"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	users         *services.UserService
	uploader      services.ImageUploader
	maxUploadSize int64
}

// NewProfileController accepts a nil uploader; photo uploads are then
// rejected.
func NewProfileController(users *services.UserService, uploader services.ImageUploader, maxUploadSize int64) *ProfileController {
	return &ProfileController{users: users, uploader: uploader, maxUploadSize: maxUploadSize}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Get current user profile
// @Tags Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.User}
// @Router /users/me [get]
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	user, err := ctrl.users.GetMe(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Profile retrieved successfully", user)
}

// UpdateProfile godoc
// @Summary Update user profile
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.Response{data=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me [patch]
func (ctrl *ProfileController) UpdateProfile(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ctrl.users.UpdateMe(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Profile updated successfully", user)
}

// UpdateProfilePhoto godoc
// @Summary Upload profile photo
// @Tags Profile
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Profile photo"
// @Success 200 {object} models.Response{data=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me/photo [post]
func (ctrl *ProfileController) UpdateProfilePhoto(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if ctrl.uploader == nil {
		respondError(c, models.BadRequest("Image uploads are not configured"))
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		respondError(c, models.BadRequest("Photo file is required"))
		return
	}
	if err := libs.ValidateImageFile(fileHeader, ctrl.maxUploadSize); err != nil {
		respondError(c, models.BadRequest("%s", err.Error()))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	url, err := ctrl.uploader.UploadImage(c.Request.Context(), file, fileHeader.Filename, "profiles")
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := ctrl.users.UpdateMe(c.Request.Context(), actor, models.UpdateProfileRequest{ProfileImageURL: &url})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Profile photo updated successfully", user)
}

// ChangePassword godoc
// @Summary Change password
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChangePasswordRequest true "Passwords"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me/password [patch]
func (ctrl *ProfileController) ChangePassword(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ctrl.users.ChangePassword(c.Request.Context(), actor, req); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Password changed successfully", nil)
}
