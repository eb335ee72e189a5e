package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"gadget-store/models"
	"gadget-store/services"
)

type SubCategoryController struct {
	subCategories *services.SubCategoryService
}

func NewSubCategoryController(subCategories *services.SubCategoryService) *SubCategoryController {
	return &SubCategoryController{subCategories: subCategories}
}

// @Summary List subcategories
// @Description Get a paginated list of subcategories
// @Tags subcategories
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param search query string false "Name filter"
// @Param category query int false "Parent category filter"
// @Param isActive query bool false "Active filter"
// @Success 200 {object} models.Response
// @Router /subcategories [get]
func (ctrl *SubCategoryController) GetSubCategories(c *gin.Context) {
	subCategories, pagination, err := ctrl.subCategories.List(c.Request.Context(), parseListOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Subcategories retrieved",
		Data: gin.H{
			"sub_categories": subCategories,
			"pagination":     pagination,
		},
	})
}

// @Summary Get subcategory by ID
// @Description Get a single subcategory with its active product count
// @Tags subcategories
// @Produce json
// @Param id path int true "Subcategory ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /subcategories/{id} [get]
func (ctrl *SubCategoryController) GetSubCategoryByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sub, productsCount, err := ctrl.subCategories.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Subcategory retrieved",
		Data: gin.H{
			"sub_category":   sub,
			"products_count": productsCount,
		},
	})
}

// @Summary List subcategories of a category
// @Description Get all subcategories belonging to a category
// @Tags subcategories
// @Produce json
// @Param id path int true "Category ID"
// @Param isActive query bool false "Active filter"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id}/subcategories [get]
func (ctrl *SubCategoryController) GetSubCategoriesByCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var isActive *bool
	if raw := c.Query("isActive"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			isActive = &active
		}
	}

	category, subCategories, err := ctrl.subCategories.ListByCategory(c.Request.Context(), id, isActive)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Subcategories retrieved",
		Data: gin.H{
			"category":       category,
			"sub_categories": subCategories,
		},
	})
}

// @Summary Create subcategory
// @Description Create a new subcategory under an active category
// @Tags subcategories
// @Accept json
// @Produce json
// @Param body body models.CreateSubCategoryRequest true "Subcategory payload"
// @Security BearerAuth
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /subcategories [post]
func (ctrl *SubCategoryController) CreateSubCategory(c *gin.Context) {
	var req models.CreateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Subcategory name and category are required"})
		return
	}

	user := currentUser(c)
	sub, err := ctrl.subCategories.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(201, models.Response{
		Success: true,
		Message: "Subcategory created successfully",
		Data:    sub,
	})
}

// @Summary Update subcategory
// @Description Update a subcategory, optionally moving it to another category
// @Tags subcategories
// @Accept json
// @Produce json
// @Param id path int true "Subcategory ID"
// @Param body body models.UpdateSubCategoryRequest true "Update payload"
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /subcategories/{id} [put]
func (ctrl *SubCategoryController) UpdateSubCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid request body"})
		return
	}

	sub, err := ctrl.subCategories.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Subcategory updated successfully",
		Data:    sub,
	})
}

// @Summary Delete subcategory
// @Description Delete a subcategory without products
// @Tags subcategories
// @Produce json
// @Param id path int true "Subcategory ID"
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /subcategories/{id} [delete]
func (ctrl *SubCategoryController) DeleteSubCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.subCategories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Subcategory deleted successfully",
	})
}
