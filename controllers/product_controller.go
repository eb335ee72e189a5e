package controllers

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gadget-store/config"
	"gadget-store/libs"
	"gadget-store/models"
	"gadget-store/services"
)

type ProductController struct {
	products *services.ProductService
	images   libs.ImageStore
}

func NewProductController(products *services.ProductService, images libs.ImageStore) *ProductController {
	return &ProductController{products: products, images: images}
}

// stageImages uploads every file under the "images" form field to the object
// store before any database write. If one upload fails, the ones already
// staged are deleted so a failed request leaves nothing behind.
func (ctrl *ProductController) stageImages(c *gin.Context) ([]models.StagedImage, *models.AppError) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > config.AppConfig.MaxUploadFiles {
		return nil, models.NewValidationError("Too many images, maximum is " + strconv.Itoa(config.AppConfig.MaxUploadFiles))
	}
	if ctrl.images == nil {
		return nil, models.NewStorageError("Image storage is not configured")
	}

	staged := []models.StagedImage{}
	cleanup := func() {
		for _, img := range staged {
			if err := ctrl.images.Delete(c.Request.Context(), img.PublicID); err != nil {
				log.Printf("Error deleting staged image %s from object store: %v", img.PublicID, err)
			}
		}
	}

	for _, header := range files {
		if err := libs.ValidateImageFile(header, config.AppConfig.MaxUploadSize); err != nil {
			cleanup()
			return nil, models.NewValidationError(err.Error())
		}

		file, err := header.Open()
		if err != nil {
			cleanup()
			return nil, models.NewStorageError("Failed to read uploaded image")
		}

		url, publicID, err := ctrl.images.Upload(c.Request.Context(), file, header.Filename, "products")
		file.Close()
		if err != nil {
			log.Printf("Error uploading image %s: %v", header.Filename, err)
			cleanup()
			return nil, models.NewStorageError("Failed to upload image")
		}

		staged = append(staged, models.StagedImage{
			PublicID:     publicID,
			URL:          url,
			OriginalName: header.Filename,
		})
	}
	return staged, nil
}

func parseVariants(raw string) ([]models.Variant, *models.AppError) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var variants []models.Variant
	if err := json.Unmarshal([]byte(raw), &variants); err != nil {
		return nil, models.NewValidationError("Invalid format for variants. It must be a valid JSON array string.")
	}
	return variants, nil
}

// @Summary List products
// @Description Get a paginated, filterable list of products
// @Tags products
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param search query string false "Full-text search"
// @Param category query int false "Category filter"
// @Param subCategory query int false "Subcategory filter"
// @Param minPrice query number false "Minimum variant price"
// @Param maxPrice query number false "Maximum variant price"
// @Param isActive query bool false "Active filter"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} models.Response
// @Router /products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	products, pagination, err := ctrl.products.List(c.Request.Context(), parseListOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Products retrieved",
		Data: gin.H{
			"products":   products,
			"pagination": pagination,
		},
	})
}

// @Summary Search products
// @Description Full-text search over active products, ranked by relevance
// @Tags products
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /products/search [get]
func (ctrl *ProductController) SearchProducts(c *gin.Context) {
	products, pagination, err := ctrl.products.Search(c.Request.Context(),
		c.Query("q"), queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Products retrieved",
		Data: gin.H{
			"products":   products,
			"pagination": pagination,
		},
	})
}

// @Summary Get product by ID
// @Description Get a single product with its variants and images
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Product retrieved",
		Data:    product,
	})
}

// @Summary List products of a subcategory
// @Description Get the active products belonging to a subcategory
// @Tags products
// @Produce json
// @Param id path int true "Subcategory ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /subcategories/{id}/products [get]
func (ctrl *ProductController) GetProductsBySubCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sub, products, pagination, err := ctrl.products.BySubCategory(c.Request.Context(), id, parseListOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Products retrieved",
		Data: gin.H{
			"sub_category": sub,
			"products":     products,
			"pagination":   pagination,
		},
	})
}

// @Summary Create product
// @Description Create a product with variants and optional images
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Product title"
// @Param description formData string true "Product description"
// @Param sub_category_id formData int true "Subcategory ID"
// @Param variants formData string true "Variants as a JSON array string"
// @Param images formData file false "Product images"
// @Security BearerAuth
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	variants, appErr := parseVariants(c.PostForm("variants"))
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	subCategoryID, _ := strconv.Atoi(c.PostForm("sub_category_id"))

	staged, appErr := ctrl.stageImages(c)
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	user := currentUser(c)
	product, err := ctrl.products.Create(c.Request.Context(), user.ID, models.CreateProductRequest{
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		SubCategoryID: subCategoryID,
		Variants:      variants,
	}, staged)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(201, models.Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// @Summary Update product
// @Description Update a product; variants replace wholesale, images append or replace
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param title formData string false "Product title"
// @Param description formData string false "Product description"
// @Param sub_category_id formData int false "Subcategory ID"
// @Param variants formData string false "Variants as a JSON array string"
// @Param is_active formData bool false "Active flag"
// @Param replace_images formData bool false "Replace existing images"
// @Param images formData file false "Product images"
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	req := models.UpdateProductRequest{}

	if raw, exists := c.GetPostForm("title"); exists {
		req.Title = &raw
	}
	if raw, exists := c.GetPostForm("description"); exists {
		req.Description = &raw
	}
	if raw, exists := c.GetPostForm("sub_category_id"); exists {
		subCategoryID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid sub_category_id"})
			return
		}
		req.SubCategoryID = &subCategoryID
	}
	if raw, exists := c.GetPostForm("is_active"); exists {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(400, models.ErrorResponse{Success: false, Message: "Invalid is_active"})
			return
		}
		req.IsActive = &active
	}
	if raw, exists := c.GetPostForm("replace_images"); exists {
		req.ReplaceImages, _ = strconv.ParseBool(raw)
	}
	if raw, exists := c.GetPostForm("variants"); exists {
		variants, appErr := parseVariants(raw)
		if appErr != nil {
			respondError(c, appErr)
			return
		}
		if variants == nil {
			variants = []models.Variant{}
		}
		req.Variants = variants
	}

	staged, appErr := ctrl.stageImages(c)
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	product, err := ctrl.products.Update(c.Request.Context(), id, req, staged)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// @Summary Delete product
// @Description Delete a product along with its stored images
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}
