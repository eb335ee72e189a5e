package controllers

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gadget-store/models"
	"gadget-store/repositories"
)

// respondError maps an application error to its HTTP status. Anything that is
// not an AppError is logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status(), models.ErrorResponse{
			Success: false,
			Message: appErr.Message,
			Errors:  appErr.Details,
		})
		return
	}

	log.Printf("Unhandled error: %v", err)
	c.JSON(500, models.ErrorResponse{
		Success: false,
		Message: "Internal server error",
	})
}

func currentUser(c *gin.Context) *models.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		c.JSON(400, models.ErrorResponse{
			Success: false,
			Message: "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return value
}

// parseListOptions reads the shared listing query parameters. Unparseable
// values fall back to their defaults rather than erroring.
func parseListOptions(c *gin.Context) repositories.ListOptions {
	opts := repositories.ListOptions{
		Search:    strings.TrimSpace(c.Query("search")),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 10),
	}

	if raw := c.Query("isActive"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			opts.IsActive = &active
		}
	}
	if raw := c.Query("category"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			opts.CategoryID = id
		}
	}
	if raw := c.Query("subCategory"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			opts.SubCategoryID = id
		}
	}
	if raw := c.Query("minPrice"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			opts.MinPrice = &price
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			opts.MaxPrice = &price
		}
	}
	return opts
}
