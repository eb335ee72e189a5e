package controllers

import (
	"github.com/gin-gonic/gin"

	"gadget-store/models"
	"gadget-store/services"
)

type WishlistController struct {
	wishlists *services.WishlistService
}

func NewWishlistController(wishlists *services.WishlistService) *WishlistController {
	return &WishlistController{wishlists: wishlists}
}

// @Summary Get wishlist
// @Description Get the authenticated user's wishlist in insertion order
// @Tags wishlist
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /wishlist [get]
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	user := currentUser(c)
	products, pagination, err := ctrl.wishlists.List(c.Request.Context(),
		user.ID, queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Wishlist retrieved",
		Data: gin.H{
			"products":   products,
			"pagination": pagination,
		},
	})
}

// @Summary Add product to wishlist
// @Description Add an active product to the wishlist
// @Tags wishlist
// @Produce json
// @Param productId path int true "Product ID"
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /wishlist/{productId} [post]
func (ctrl *WishlistController) AddToWishlist(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	user := currentUser(c)
	if err := ctrl.wishlists.Add(c.Request.Context(), user.ID, productID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Product added to wishlist",
	})
}

// @Summary Remove product from wishlist
// @Description Remove a product from the wishlist
// @Tags wishlist
// @Produce json
// @Param productId path int true "Product ID"
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /wishlist/{productId} [delete]
func (ctrl *WishlistController) RemoveFromWishlist(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	user := currentUser(c)
	if err := ctrl.wishlists.Remove(c.Request.Context(), user.ID, productID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Product removed from wishlist",
	})
}

// @Summary Clear wishlist
// @Description Remove every product from the wishlist
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /wishlist [delete]
func (ctrl *WishlistController) ClearWishlist(c *gin.Context) {
	user := currentUser(c)
	if err := ctrl.wishlists.Clear(c.Request.Context(), user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Wishlist cleared",
	})
}

// @Summary Check wishlist membership
// @Description Report whether a product is in the wishlist
// @Tags wishlist
// @Produce json
// @Param productId path int true "Product ID"
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /wishlist/check/{productId} [get]
func (ctrl *WishlistController) CheckWishlist(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	user := currentUser(c)
	exists, err := ctrl.wishlists.Check(c.Request.Context(), user.ID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Wishlist checked",
		Data:    gin.H{"in_wishlist": exists},
	})
}

// @Summary Count wishlist items
// @Description Get the number of products in the wishlist
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /wishlist/count [get]
func (ctrl *WishlistController) CountWishlist(c *gin.Context) {
	user := currentUser(c)
	count, err := ctrl.wishlists.Count(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Wishlist counted",
		Data:    gin.H{"count": count},
	})
}
