package controllers

import (
	"net/http"

	"food-delivery/services"

	"github.com/gin-gonic/gin"
)

// UserController serves the admin user management endpoints.
type UserController struct {
	userService *services.UserService
}

func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetAllUsers godoc
// @Summary List users
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.HATEOASResponse
// @Router /admin/users [get]
func (ctrl *UserController) GetAllUsers(c *gin.Context) {
	page := getPaginationParams(c)

	users, total, err := ctrl.userService.ListUsers(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildResponse(c, "Users retrieved successfully", users, page, total))
}

// GetUserByID godoc
// @Summary Get user
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response{data=models.User}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [get]
func (ctrl *UserController) GetUserByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := ctrl.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "User retrieved successfully", user)
}

// DeleteUser godoc
// @Summary Deactivate user
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.userService.DeleteUser(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "User deleted successfully", nil)
}

// GetDashboard godoc
// @Summary Admin dashboard
// @Tags Admin - Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.DashboardStats}
// @Router /admin/dashboard [get]
func (ctrl *UserController) GetDashboard(c *gin.Context) {
	stats, err := ctrl.userService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Dashboard retrieved successfully", stats)
}
