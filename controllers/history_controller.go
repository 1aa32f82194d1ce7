package controllers

import (
	"net/http"

	"food-delivery/services"

	"github.com/gin-gonic/gin"
)

type HistoryController struct {
	orders *services.OrderService
}

func NewHistoryController(orders *services.OrderService) *HistoryController {
	return &HistoryController{orders: orders}
}

// GetHistory godoc
// @Summary Order status history
// @Description Every status change of the order, oldest first
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response{data=[]models.OrderStatusHistory}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id}/history [get]
func (ctrl *HistoryController) GetHistory(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	history, err := ctrl.orders.GetOrderHistory(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Order history retrieved successfully", history)
}
