package routers

import (
	"Inventory/handlers"
	"Inventory/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRouters(db *gorm.DB, rdb *redis.Client) *gin.Engine {
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Authorization")
		c.Next()
	})
	err := router.SetTrustedProxies(nil)
	if err != nil {
		return nil
	}

	// Product images are served straight from disk.
	router.Static("/uploads", "./uploads")

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	//// Public routes. AuthMiddleware only resolves the token, it never aborts.
	router.Use(middleware.AuthMiddleware(db))
	{
		// Read-only purchase catalog for non-staff visitors.
		router.GET("/api/v1/catalog", func(context *gin.Context) {
			handlers.GetCatalogHandler(context, db, rdb)
		})
		// Product detail.
		router.GET("/api/v1/products/:productID", func(context *gin.Context) {
			handlers.GetProductDataHandler(context, db)
		})
		// Account registration.
		router.POST("/api/v1/register", func(context *gin.Context) {
			handlers.RegisterHandler(context, db)
		})
		// Login.
		router.POST("/api/v1/login", func(context *gin.Context) {
			handlers.LoginHandler(context, db)
		})

		//// Login required.
		loginRequired := router.Group("/api/v1/user")
		loginRequired.Use(middleware.CheckLoginMiddleware())
		{
			loginRequired.GET("/profile", func(context *gin.Context) {
				handlers.GetUserProfileHandler(context, db)
			})
			loginRequired.PATCH("/profile/edit", func(context *gin.Context) {
				handlers.UpdateUserProfileHandler(context, db)
			})
			loginRequired.POST("/logout", func(context *gin.Context) {
				handlers.LogOutHandler(context, db)
			})
		}

		//// Staff only: catalog management, sales recording, reporting.
		staffRequired := router.Group("/api/v1/staff")
		staffRequired.Use(middleware.CheckLoginMiddleware(), middleware.CheckStaffPermissionMiddleware())
		{
			// Dashboard KPIs.
			staffRequired.GET("/dashboard", func(context *gin.Context) {
				handlers.DashboardHandler(context, db)
			})
			// Sales report.
			staffRequired.GET("/sales", func(context *gin.Context) {
				handlers.SalesReportHandler(context, db)
			})
			// Manual sale with operator-chosen quantity.
			staffRequired.POST("/sales", func(context *gin.Context) {
				handlers.RegisterSaleHandler(context, db, rdb)
			})
			// One-click sale of a single unit.
			staffRequired.POST("/sales/quick/:productID", func(context *gin.Context) {
				handlers.QuickSaleHandler(context, db, rdb)
			})

			// Registered accounts.
			staffRequired.GET("/users", func(context *gin.Context) {
				handlers.GetUserListHandler(context, db)
			})

			// Product CRUD and image upload.
			staffRequired.GET("/products/:productID", func(context *gin.Context) {
				handlers.GetProductAllDataHandler(context, db)
			})
			staffRequired.POST("/products", func(context *gin.Context) {
				handlers.CreateProductHandler(context, db, rdb)
			})
			staffRequired.PATCH("/products/:productID", func(context *gin.Context) {
				handlers.UpdateProductHandler(context, db, rdb)
			})
			staffRequired.DELETE("/products/:productID", func(context *gin.Context) {
				handlers.DeleteProductHandler(context, db, rdb)
			})
			staffRequired.POST("/products/image", func(context *gin.Context) {
				handlers.UploadImageHandler(context)
			})

			// Category CRUD.
			staffRequired.GET("/categories", func(context *gin.Context) {
				handlers.GetCategoryListHandler(context, db)
			})
			staffRequired.POST("/categories", func(context *gin.Context) {
				handlers.CreateCategoryHandler(context, db)
			})
			staffRequired.PATCH("/categories/:categoryID", func(context *gin.Context) {
				handlers.UpdateCategoryHandler(context, db)
			})
			staffRequired.DELETE("/categories/:categoryID", func(context *gin.Context) {
				handlers.DeleteCategoryHandler(context, db)
			})
		}
	}

	return router
}
