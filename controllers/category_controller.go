package controllers

import (
	"net/http"

	"food-delivery/models"
	"food-delivery/services"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

// GetAllCategories godoc
// @Summary List restaurant categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Category}
// @Router /categories [get]
func (ctrl *CategoryController) GetAllCategories(c *gin.Context) {
	categories, err := ctrl.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Categories retrieved successfully", categories)
}

// CreateCategory godoc
// @Summary Create category
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CategoryRequest true "Category"
// @Success 201 {object} models.Response{data=models.Category}
// @Failure 409 {object} models.ErrorResponse
// @Router /categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := ctrl.categories.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Category created successfully", category)
}

// UpdateCategory godoc
// @Summary Update category
// @Tags Categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body models.CategoryRequest true "Category"
// @Success 200 {object} models.Response{data=models.Category}
// @Router /categories/{id} [put]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := ctrl.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Category updated successfully", category)
}

// DeleteCategory godoc
// @Summary Delete category
// @Tags Categories
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response
// @Router /categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.categories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Category deleted successfully", nil)
}
