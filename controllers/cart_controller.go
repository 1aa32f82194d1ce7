package controllers

import (
	"net/http"

	"food-delivery/models"
	"food-delivery/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// GetCart godoc
// @Summary Get my cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.CartView}
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	cart, err := ctrl.carts.GetCart(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart retrieved successfully", cart)
}

// AddCartItem godoc
// @Summary Add item to cart
// @Description A cart holds items of a single restaurant only
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddCartItemRequest true "Cart item"
// @Success 200 {object} models.Response{data=models.CartView}
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddCartItem(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := ctrl.carts.AddItem(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Item added to cart", cart)
}

// UpdateCartItem godoc
// @Summary Change cart item quantity
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Cart item ID"
// @Param request body models.UpdateCartItemRequest true "Quantity"
// @Success 200 {object} models.Response{data=models.CartView}
// @Router /cart/items/{id} [patch]
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := ctrl.carts.UpdateItemQuantity(c.Request.Context(), actor, id, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart item updated", cart)
}

// RemoveCartItem godoc
// @Summary Remove cart item
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Cart item ID"
// @Success 200 {object} models.Response{data=models.CartView}
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveCartItem(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	cart, err := ctrl.carts.RemoveItem(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart item removed", cart)
}

// ClearCart godoc
// @Summary Clear cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := ctrl.carts.ClearCart(c.Request.Context(), actor); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Cart cleared", nil)
}
