package handlers

import (
	"Inventory/models"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Check whether a category name is already taken.
func IsCategoryNameExists(db *gorm.DB, name string) (bool, error) {
	var category models.Category
	err := db.First(&category, "Name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func GetCategoryListHandler(c *gin.Context, db *gorm.DB) {
	var categories []struct {
		Id          uint
		Name        string
		Description string
	}
	err := db.
		Model(&models.Category{}).
		Select("Id", "Name", "Description").
		Order("name").
		Find(&categories).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to read category list",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "category list read successfully",
		"categories": categories,
	})
}

func CreateCategoryHandler(c *gin.Context, db *gorm.DB) {
	var newCategory struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	err := c.ShouldBindJSON(&newCategory)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "failed to bind request data",
			"error":   err.Error(),
		})
		return
	}

	exists, err := IsCategoryNameExists(db, newCategory.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to check category name",
			"error":   err.Error(),
		})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "category name already in use",
		})
		return
	}

	category := models.Category{
		Name:        newCategory.Name,
		Description: newCategory.Description,
	}
	err = db.Create(&category).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to create category",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "category created successfully",
		"category": category,
	})
}

func UpdateCategoryHandler(c *gin.Context, db *gorm.DB) {
	categoryID := c.Param("categoryID")

	var categoryDataReq struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	err := c.ShouldBindJSON(&categoryDataReq)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "failed to bind request data",
			"error":   err.Error(),
		})
		return
	}

	var category models.Category
	err = db.First(&category, "id = ?", categoryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "category not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to read category data",
			"error":   err.Error(),
		})
		return
	}

	if categoryDataReq.Name != nil && *categoryDataReq.Name != category.Name {
		exists, err := IsCategoryNameExists(db, *categoryDataReq.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "failed to check category name",
				"error":   err.Error(),
			})
			return
		}
		if exists {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "category name already in use",
			})
			return
		}
		category.Name = *categoryDataReq.Name
	}
	if categoryDataReq.Description != nil {
		category.Description = *categoryDataReq.Description
	}

	err = db.Save(&category).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to update category",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "category updated successfully",
		"category": category,
	})
}

// DeleteCategoryHandler deletes a category. Referencing products are kept and
// their category reference is cleared, in the same transaction.
func DeleteCategoryHandler(c *gin.Context, db *gorm.DB) {
	categoryID := c.Param("categoryID")

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to begin transaction",
			"error":   tx.Error.Error(),
		})
		return
	}

	var category models.Category
	err := tx.First(&category, "id = ?", categoryID).Error
	if err != nil {
		tx.Rollback()
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

	err = tx.Model(&models.Product{}).
		Where("category_id = ?", category.ID).
		Update("category_id", nil).
		Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to clear product category references",
			"error":   err.Error(),
		})
		return
	}

	err = tx.Delete(&category).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to delete category",
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

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("category %s deleted, associated products left uncategorized", category.Name),
	})
}
