package controllers

import (
	"fmt"
	"net/http"

	"food-delivery/libs"
	"food-delivery/models"
	"food-delivery/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	menus         *services.MenuService
	maxUploadSize int64
}

func NewMenuController(menus *services.MenuService, maxUploadSize int64) *MenuController {
	return &MenuController{menus: menus, maxUploadSize: maxUploadSize}
}

// GetRestaurantMenu godoc
// @Summary Restaurant menu
// @Description Available items grouped by menu category
// @Tags Menu
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} models.Response{data=models.RestaurantMenu}
// @Failure 404 {object} models.ErrorResponse
// @Router /restaurants/{id}/menu [get]
func (ctrl *MenuController) GetRestaurantMenu(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	menu, err := ctrl.menus.GetRestaurantMenu(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Menu retrieved successfully", menu)
}

// GetMenuItems godoc
// @Summary List all menu items of a restaurant
// @Tags Menu
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} models.Response{data=[]models.MenuItem}
// @Router /restaurants/{id}/menu-items [get]
func (ctrl *MenuController) GetMenuItems(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	items, err := ctrl.menus.ListItems(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Menu items retrieved successfully", items)
}

// GetMenuItemByID godoc
// @Summary Get menu item
// @Tags Menu
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 200 {object} models.Response{data=models.MenuItem}
// @Failure 404 {object} models.ErrorResponse
// @Router /menu-items/{id} [get]
func (ctrl *MenuController) GetMenuItemByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	item, err := ctrl.menus.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Menu item retrieved successfully", item)
}

// CreateMenuItem godoc
// @Summary Add menu item
// @Tags Menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Restaurant ID"
// @Param request body models.MenuItemRequest true "Menu item"
// @Success 201 {object} models.Response{data=models.MenuItem}
// @Failure 403 {object} models.ErrorResponse
// @Router /restaurants/{id}/menu-items [post]
func (ctrl *MenuController) CreateMenuItem(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	restaurantID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.MenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctrl.menus.CreateItem(c.Request.Context(), actor, restaurantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Menu item created successfully", item)
}

// UpdateMenuItem godoc
// @Summary Update menu item
// @Tags Menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Menu item ID"
// @Param request body models.MenuItemRequest true "Menu item"
// @Success 200 {object} models.Response{data=models.MenuItem}
// @Router /menu-items/{id} [put]
func (ctrl *MenuController) UpdateMenuItem(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.MenuItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctrl.menus.UpdateItem(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Menu item updated successfully", item)
}

// SetMenuItemAvailability godoc
// @Summary Toggle menu item availability
// @Tags Menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Menu item ID"
// @Param request body models.MenuItemAvailabilityRequest true "Availability"
// @Success 200 {object} models.Response{data=models.MenuItem}
// @Router /menu-items/{id}/availability [patch]
func (ctrl *MenuController) SetMenuItemAvailability(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.MenuItemAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctrl.menus.SetAvailability(c.Request.Context(), actor, id, *req.IsAvailable)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Menu item availability updated", item)
}

// DeleteMenuItem godoc
// @Summary Delete menu item
// @Tags Menu
// @Security BearerAuth
// @Produce json
// @Param id path int true "Menu item ID"
// @Success 200 {object} models.Response
// @Router /menu-items/{id} [delete]
func (ctrl *MenuController) DeleteMenuItem(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.menus.DeleteItem(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Menu item deleted successfully", nil)
}

// UploadMenuItemImage godoc
// @Summary Upload menu item image
// @Tags Menu
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Menu item ID"
// @Param image formData file true "Image"
// @Success 200 {object} models.Response{data=models.MenuItem}
// @Failure 400 {object} models.ErrorResponse
// @Router /menu-items/{id}/image [post]
func (ctrl *MenuController) UploadMenuItemImage(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, models.BadRequest("Image file is required"))
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

	item, err := ctrl.menus.UploadImage(c.Request.Context(), actor, id, file, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Menu item image uploaded", item)
}
