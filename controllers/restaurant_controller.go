package controllers

import (
	"net/http"
	"strconv"

	"food-delivery/models"
	"food-delivery/services"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	restaurants *services.RestaurantService
	orders      *services.OrderService
}

func NewRestaurantController(restaurants *services.RestaurantService, orders *services.OrderService) *RestaurantController {
	return &RestaurantController{restaurants: restaurants, orders: orders}
}

func restaurantFilter(c *gin.Context) models.RestaurantFilter {
	filter := models.RestaurantFilter{City: c.Query("city")}
	if id, err := strconv.ParseInt(c.Query("category_id"), 10, 64); err == nil && id > 0 {
		filter.CategoryID = &id
	}
	if open, err := strconv.ParseBool(c.Query("is_open")); err == nil {
		filter.IsOpen = &open
	}
	return filter
}

// GetAllRestaurants godoc
// @Summary List restaurants
// @Description Active restaurants, best rated first
// @Tags Restaurants
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param category_id query int false "Filter by category"
// @Param city query string false "Filter by city"
// @Param is_open query bool false "Filter by open status"
// @Success 200 {object} models.HATEOASResponse
// @Router /restaurants [get]
func (ctrl *RestaurantController) GetAllRestaurants(c *gin.Context) {
	page := getPaginationParams(c)

	restaurants, total, err := ctrl.restaurants.List(c.Request.Context(), restaurantFilter(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildResponse(c, "Restaurants retrieved successfully", restaurants, page, total))
}

// GetRestaurantByID godoc
// @Summary Get restaurant
// @Tags Restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} models.Response{data=models.Restaurant}
// @Failure 404 {object} models.ErrorResponse
// @Router /restaurants/{id} [get]
func (ctrl *RestaurantController) GetRestaurantByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	restaurant, err := ctrl.restaurants.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Restaurant retrieved successfully", restaurant)
}

// GetMyRestaurants godoc
// @Summary List my restaurants
// @Tags Owner
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Restaurant}
// @Router /owner/restaurants [get]
func (ctrl *RestaurantController) GetMyRestaurants(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	restaurants, err := ctrl.restaurants.ListMine(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Restaurants retrieved successfully", restaurants)
}

// UpdateRestaurant godoc
// @Summary Update restaurant
// @Tags Owner
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Restaurant ID"
// @Param request body models.RestaurantRequest true "Restaurant"
// @Success 200 {object} models.Response{data=models.Restaurant}
// @Failure 403 {object} models.ErrorResponse
// @Router /owner/restaurants/{id} [put]
func (ctrl *RestaurantController) UpdateRestaurant(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.RestaurantRequest
	if !bindJSON(c, &req) {
		return
	}

	restaurant, err := ctrl.restaurants.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Restaurant updated successfully", restaurant)
}

// UpdateRestaurantStatus godoc
// @Summary Open or close restaurant
// @Tags Owner
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Restaurant ID"
// @Param request body models.RestaurantStatusRequest true "Status"
// @Success 200 {object} models.Response{data=models.Restaurant}
// @Failure 403 {object} models.ErrorResponse
// @Router /owner/restaurants/{id}/status [patch]
func (ctrl *RestaurantController) UpdateRestaurantStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.RestaurantStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	restaurant, err := ctrl.restaurants.UpdateStatus(c.Request.Context(), actor, id, *req.IsOpen)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Restaurant status updated", restaurant)
}

// GetRestaurantOrders godoc
// @Summary List orders of a restaurant
// @Description Restaurant owner or admin
// @Tags Owner
// @Security BearerAuth
// @Produce json
// @Param id path int true "Restaurant ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.HATEOASResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /owner/restaurants/{id}/orders [get]
func (ctrl *RestaurantController) GetRestaurantOrders(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	page := getPaginationParams(c)

	orders, total, err := ctrl.orders.ListOrdersForRestaurant(c.Request.Context(), actor, id, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildResponse(c, "Orders retrieved successfully", orders, page, total))
}

// CreateRestaurant godoc
// @Summary Create restaurant
// @Tags Admin - Restaurants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.RestaurantRequest true "Restaurant"
// @Success 201 {object} models.Response{data=models.Restaurant}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/restaurants [post]
func (ctrl *RestaurantController) CreateRestaurant(c *gin.Context) {
	var req models.RestaurantRequest
	if !bindJSON(c, &req) {
		return
	}

	restaurant, err := ctrl.restaurants.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Restaurant created successfully", restaurant)
}

// DeleteRestaurant godoc
// @Summary Deactivate restaurant
// @Tags Admin - Restaurants
// @Security BearerAuth
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} models.Response
// @Router /admin/restaurants/{id} [delete]
func (ctrl *RestaurantController) DeleteRestaurant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.restaurants.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Restaurant deleted successfully", nil)
}
