package handlers

import (
	"Inventory/models"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func isValidImageExtensions(file *multipart.FileHeader) bool {
	allowExtensions := []string{".jpg", ".jpeg", ".png"}
	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowExt := range allowExtensions {
		if fileExt == allowExt {
			return true
		}
	}
	return false
}

// Image paths are derived from the product name, one directory per product.
func productImageDir(productName string) string {
	return filepath.Join("uploads", "products", strings.ReplaceAll(productName, " ", "_"))
}

func makeUniqueFileName(file *multipart.FileHeader) string {
	return uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
}

// GetUserListHandler lists registered accounts for staff.
func GetUserListHandler(c *gin.Context, db *gorm.DB) {
	var userList []struct {
		Id       uint
		Username string
		Role     string
	}
	err := db.
		Model(&models.User{}).
		Select("Id", "Username", "Role").
		Find(&userList).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to read user list",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "user list read successfully",
		"userList": userList,
	})
}

// GetProductAllDataHandler serves the full product record, sales included.
func GetProductAllDataHandler(c *gin.Context, db *gorm.DB) {
	productID := c.Param("productID")

	var product models.Product
	err := db.Preload("Category").Preload("Sales").First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to read product data",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "product read successfully",
		"product": product,
	})
}

func UploadImageHandler(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "failed to bind image",
			"error":   err.Error(),
		})
		return
	}

	productName := c.PostForm("name")
	if productName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "missing product name",
		})
		return
	}

	if !isValidImageExtensions(file) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid image file extension",
		})
		return
	}

	uploadsDir := productImageDir(productName)
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to create uploads directory",
			"error":   err.Error(),
		})
		return
	}

	imageName := makeUniqueFileName(file)
	filePath := filepath.Join(uploadsDir, imageName)
	if err := c.SaveUploadedFile(file, filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to save image",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "image uploaded successfully",
		"imagePath": "/" + filepath.ToSlash(filePath),
	})
}

func CreateProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	var newProduct struct {
		Name       string `json:"name" binding:"required"`
		CategoryID *uint  `json:"categoryID"`
		Variant    string `json:"variant"`
		Price      uint   `json:"price" binding:"required"`
		Stock      uint   `json:"stock"`
		ImageURL   string `json:"imageURL"`
	}
	err := c.ShouldBindJSON(&newProduct)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "failed to bind request data",
			"error":   err.Error(),
		})
		return
	}

	if newProduct.CategoryID != nil {
		var category models.Category
		err = db.First(&category, *newProduct.CategoryID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"message": "category not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "failed to look up category",
				"error":   err.Error(),
			})
			return
		}
	}

	product := models.Product{
		Name:       newProduct.Name,
		CategoryID: newProduct.CategoryID,
		Variant:    newProduct.Variant,
		Price:      newProduct.Price,
		Stock:      newProduct.Stock,
		ImageURL:   newProduct.ImageURL,
	}

	err = db.Create(&product).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to create product",
			"error":   err.Error(),
		})
		return
	}

	refreshProductCache(c, rdb, &product)

	c.JSON(http.StatusCreated, gin.H{
		"message": "product created successfully",
		"product": product,
	})
}

func UpdateProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	productID := c.Param("productID")

	var productDataReq struct {
		Name       *string `json:"name"`
		CategoryID *uint   `json:"categoryID"`
		Variant    *string `json:"variant"`
		Price      *uint   `json:"price"`
		Stock      *uint   `json:"stock"`
		ImageURL   *string `json:"imageURL"`
	}
	err := c.ShouldBindJSON(&productDataReq)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "failed to bind request data",
			"error":   err.Error(),
		})
		return
	}

	var product models.Product
	err = db.First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to read product data",
			"error":   err.Error(),
		})
		return
	}

	if productDataReq.CategoryID != nil {
		// CategoryID 0 clears the category reference.
		if *productDataReq.CategoryID == 0 {
			product.CategoryID = nil
		} else {
			var category models.Category
			err = db.First(&category, *productDataReq.CategoryID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusNotFound, gin.H{
						"message": "category not found",
					})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{
					"message": "failed to look up category",
					"error":   err.Error(),
				})
				return
			}
			product.CategoryID = productDataReq.CategoryID
		}
	}

	if productDataReq.Name != nil {
		product.Name = *productDataReq.Name
	}
	if productDataReq.Variant != nil {
		product.Variant = *productDataReq.Variant
	}
	if productDataReq.Price != nil {
		product.Price = *productDataReq.Price
	}
	if productDataReq.Stock != nil {
		product.Stock = *productDataReq.Stock
	}
	if productDataReq.ImageURL != nil {
		product.ImageURL = *productDataReq.ImageURL
	}

	err = db.Save(&product).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to update product",
			"error":   err.Error(),
		})
		return
	}

	refreshProductCache(c, rdb, &product)

	c.JSON(http.StatusOK, gin.H{
		"message": "product updated successfully",
		"product": product,
	})
}

// DeleteProductHandler deletes a product and all of its sales in one
// transaction; a sale cannot outlive its product.
func DeleteProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	productID := c.Param("productID")

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to begin transaction",
			"error":   tx.Error.Error(),
		})
		return
	}

	var product models.Product
	err := tx.First(&product, "id = ?", productID).Error
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to look up product",
			"error":   err.Error(),
		})
		return
	}

	err = tx.Where("product_id = ?", product.ID).Delete(&models.Sale{}).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to delete product sales",
			"error":   err.Error(),
		})
		return
	}

	err = tx.Delete(&product).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to delete product",
			"error":   err.Error(),
		})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to commit transaction",
			"error":   err.Error(),
		})
		return
	}

	removeProductFromCache(c, rdb, product.ID)

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("product %s deleted, associated sales removed", product.Name),
	})
}
