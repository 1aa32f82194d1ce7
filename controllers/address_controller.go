package controllers

import (
	"net/http"

	"food-delivery/models"
	"food-delivery/services"

	"github.com/gin-gonic/gin"
)

type AddressController struct {
	addresses *services.AddressService
}

func NewAddressController(addresses *services.AddressService) *AddressController {
	return &AddressController{addresses: addresses}
}

// ListAddresses godoc
// @Summary List my delivery addresses
// @Tags Addresses
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Address}
// @Router /addresses [get]
func (ctrl *AddressController) ListAddresses(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	addresses, err := ctrl.addresses.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Addresses retrieved successfully", addresses)
}

// GetAddress godoc
// @Summary Get address
// @Tags Addresses
// @Security BearerAuth
// @Produce json
// @Param id path int true "Address ID"
// @Success 200 {object} models.Response{data=models.Address}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /addresses/{id} [get]
func (ctrl *AddressController) GetAddress(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	address, err := ctrl.addresses.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Address retrieved successfully", address)
}

// CreateAddress godoc
// @Summary Add address
// @Tags Addresses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddressRequest true "Address"
// @Success 201 {object} models.Response{data=models.Address}
// @Router /addresses [post]
func (ctrl *AddressController) CreateAddress(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.AddressRequest
	if !bindJSON(c, &req) {
		return
	}

	address, err := ctrl.addresses.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Address created successfully", address)
}

// UpdateAddress godoc
// @Summary Update address
// @Tags Addresses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Address ID"
// @Param request body models.AddressRequest true "Address"
// @Success 200 {object} models.Response{data=models.Address}
// @Router /addresses/{id} [put]
func (ctrl *AddressController) UpdateAddress(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.AddressRequest
	if !bindJSON(c, &req) {
		return
	}

	address, err := ctrl.addresses.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Address updated successfully", address)
}

// SetDefaultAddress godoc
// @Summary Make address the default
// @Tags Addresses
// @Security BearerAuth
// @Produce json
// @Param id path int true "Address ID"
// @Success 200 {object} models.Response{data=models.Address}
// @Router /addresses/{id}/default [patch]
func (ctrl *AddressController) SetDefaultAddress(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	address, err := ctrl.addresses.SetDefault(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Default address updated", address)
}

// DeleteAddress godoc
// @Summary Delete address
// @Tags Addresses
// @Security BearerAuth
// @Produce json
// @Param id path int true "Address ID"
// @Success 200 {object} models.Response
// @Router /addresses/{id} [delete]
func (ctrl *AddressController) DeleteAddress(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.addresses.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Address deleted successfully", nil)
}
