package controllers

import (
	"github.com/gin-gonic/gin"

	"gadget-store/models"
	"gadget-store/services"
)

type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

// @Summary List categories
// @Description Get a paginated list of categories
// @Tags categories
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param search query string false "Name filter"
// @Param isActive query bool false "Active filter"
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	categories, pagination, err := ctrl.categories.List(c.Request.Context(), parseListOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Categories retrieved",
		Data: gin.H{
			"categories": categories,
			"pagination": pagination,
		},
	})
}

// @Summary Get category by ID
// @Description Get a single category with its active subcategories
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [get]
func (ctrl *CategoryController) GetCategoryByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	category, subCategories, err := ctrl.categories.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Category retrieved",
		Data: gin.H{
			"category":       category,
			"sub_categories": subCategories,
		},
	})
}

// @Summary Create category
// @Description Create a new category
// @Tags categories
// @Accept json
// @Produce json
// @Param body body models.CreateCategoryRequest true "Category payload"
// @Security BearerAuth
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Category name is required"})
		return
	}

	user := currentUser(c)
	category, err := ctrl.categories.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(201, models.Response{
		Success: true,
		Message: "Category created successfully",
		Data:    category,
	})
}

// @Summary Update category
// @Description Update a category's name, description or active flag
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param body body models.UpdateCategoryRequest true "Update payload"
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [put]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	category, err := ctrl.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Category updated successfully",
		Data:    category,
	})
}

// @Summary Delete category
// @Description Delete a category without subcategories
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.categories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Category deleted successfully",
	})
}
