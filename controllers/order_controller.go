package controllers

import (
	"net/http"

	"food-delivery/models"
	"food-delivery/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// CreateOrder godoc
// @Summary Place order
// @Description Converts the caller's cart into an order and empties the cart
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateOrderRequest true "Order"
// @Success 201 {object} models.Response{data=models.Order}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := ctrl.orders.CreateOrder(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Order created successfully", order)
}

// GetMyOrders godoc
// @Summary List my orders
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param sort query string false "asc for oldest first"
// @Success 200 {object} models.HATEOASResponse
// @Router /orders [get]
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	page := getPaginationParams(c)

	orders, total, err := ctrl.orders.ListOrdersForUser(c.Request.Context(), actor, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildResponse(c, "Orders retrieved successfully", orders, page, total))
}

// GetOrderByID godoc
// @Summary Get order
// @Description Visible to the customer, the restaurant owner and admins
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orders.GetOrder(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Order retrieved successfully", order)
}

// UpdateOrderStatus godoc
// @Summary Advance order status
// @Description Restaurant owner or admin. Only lifecycle transitions are accepted.
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "Status"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /orders/{id}/status [patch]
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := ctrl.orders.UpdateOrderStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Order status updated successfully", order)
}

// CancelOrder godoc
// @Summary Cancel order
// @Description The customer may cancel while the order is PENDING
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body models.CancelOrderRequest false "Reason"
// @Success 200 {object} models.Response{data=models.Order}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /orders/{id}/cancel [post]
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.CancelOrderRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	order, err := ctrl.orders.CancelOrder(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Order cancelled successfully", order)
}
