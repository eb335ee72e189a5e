package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gadget-store/config"
	"gadget-store/controllers"
	"gadget-store/libs"
	"gadget-store/middleware"
	"gadget-store/models"
	"gadget-store/repositories"
	"gadget-store/services"
)

func SetupRoutes(router *gin.Engine) {
	userRepo := repositories.NewUserRepository(config.DB)
	categoryRepo := repositories.NewCategoryRepository(config.DB)
	subCategoryRepo := repositories.NewSubCategoryRepository(config.DB)
	productRepo := repositories.NewProductRepository(config.DB)
	wishlistRepo := repositories.NewWishlistRepository(config.DB)

	var images libs.ImageStore
	if store, err := libs.NewCloudinaryStore(); err != nil {
		log.Println("Cloudinary not configured:", err)
		log.Println("Running without image uploads")
	} else {
		images = store
	}

	mail, err := models.NewEmailService()
	if err != nil {
		log.Println("SMTP not configured:", err)
		log.Println("Running without welcome emails")
		mail = nil
	}

	authSvc := services.NewAuthService(userRepo, mail)
	categorySvc := services.NewCategoryService(categoryRepo, subCategoryRepo)
	subCategorySvc := services.NewSubCategoryService(subCategoryRepo, categoryRepo, productRepo)
	productSvc := services.NewProductService(productRepo, subCategoryRepo, categoryRepo, images)
	wishlistSvc := services.NewWishlistService(wishlistRepo, productRepo)

	authCtrl := controllers.NewAuthController(authSvc)
	categoryCtrl := controllers.NewCategoryController(categorySvc)
	subCategoryCtrl := controllers.NewSubCategoryController(subCategorySvc)
	productCtrl := controllers.NewProductController(productSvc, images)
	wishlistCtrl := controllers.NewWishlistController(wishlistSvc)

	authMW := middleware.AuthMiddleware(authSvc)
	adminMW := middleware.RequireRoles("admin")
	limiter := middleware.NewRateLimiter(config.AppConfig.RateLimitWindow, config.AppConfig.RateLimitMax)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware(limiter))
	{
		auth.POST("/signup", authCtrl.Signup)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/logout", authMW, authCtrl.Logout)
		auth.GET("/me", authMW, authCtrl.Me)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", categoryCtrl.GetCategories)
		categories.GET("/:id", categoryCtrl.GetCategoryByID)
		categories.GET("/:id/subcategories", subCategoryCtrl.GetSubCategoriesByCategory)
		categories.POST("", authMW, adminMW, categoryCtrl.CreateCategory)
		categories.PUT("/:id", authMW, adminMW, categoryCtrl.UpdateCategory)
		categories.DELETE("/:id", authMW, adminMW, categoryCtrl.DeleteCategory)
	}

	subCategories := api.Group("/subcategories")
	{
		subCategories.GET("", subCategoryCtrl.GetSubCategories)
		subCategories.GET("/:id", subCategoryCtrl.GetSubCategoryByID)
		subCategories.GET("/:id/products", productCtrl.GetProductsBySubCategory)
		subCategories.POST("", authMW, adminMW, subCategoryCtrl.CreateSubCategory)
		subCategories.PUT("/:id", authMW, adminMW, subCategoryCtrl.UpdateSubCategory)
		subCategories.DELETE("/:id", authMW, adminMW, subCategoryCtrl.DeleteSubCategory)
	}

	products := api.Group("/products")
	{
		products.GET("", productCtrl.GetProducts)
		products.GET("/search", productCtrl.SearchProducts)
		products.GET("/:id", productCtrl.GetProductByID)
		products.POST("", authMW, adminMW, productCtrl.CreateProduct)
		products.PUT("/:id", authMW, adminMW, productCtrl.UpdateProduct)
		products.DELETE("/:id", authMW, adminMW, productCtrl.DeleteProduct)
	}

	wishlist := api.Group("/wishlist")
	wishlist.Use(authMW)
	{
		wishlist.GET("", wishlistCtrl.GetWishlist)
		wishlist.GET("/count", wishlistCtrl.CountWishlist)
		wishlist.GET("/check/:productId", wishlistCtrl.CheckWishlist)
		wishlist.POST("/:productId", wishlistCtrl.AddToWishlist)
		wishlist.DELETE("/:productId", wishlistCtrl.RemoveFromWishlist)
		wishlist.DELETE("", wishlistCtrl.ClearWishlist)
	}
}
