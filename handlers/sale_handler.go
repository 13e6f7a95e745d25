package handlers

import (
	"Inventory/models"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// InsufficientStockError reports a sale request exceeding the product's
// current stock. Nothing has been written when it is returned.
type InsufficientStockError struct {
	ProductName string
	Variant     string
	Stock       uint
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (%s), current stock %d",
		e.ProductName, e.Variant, e.Stock)
}

func today() time.Time {
	year, month, day := time.Now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// recordSale creates the sale record and decrements stock in one transaction.
// The unit price is copied from the product at this moment, so later price
// edits do not change historical totals. The decrement is a guarded UPDATE:
// concurrent sales over the same product cannot drive stock below zero, the
// slower request sees zero affected rows and fails without writing anything.
func recordSale(db *gorm.DB, productID uint, quantity uint) (*models.Sale, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	result := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, &InsufficientStockError{
			ProductName: product.Name,
			Variant:     product.Variant,
			Stock:       product.Stock,
		}
	}

	sale := models.Sale{
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
		SaleDate:  today(),
	}
	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	return &sale, nil
}

func respondSaleError(c *gin.Context, err error) {
	var insufficient *InsufficientStockError
	if errors.As(err, &insufficient) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": insufficient.Error(),
		})
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "product not found",
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"message": "failed to register sale",
		"error":   err.Error(),
	})
}

func respondSaleRegistered(c *gin.Context, db *gorm.DB, rdb *redis.Client, sale *models.Sale) {
	var product models.Product
	if err := db.Preload("Category").First(&product, sale.ProductID).Error; err == nil {
		refreshProductCache(c, rdb, &product)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("sale registered, %d units deducted", sale.Quantity),
		"sale": gin.H{
			"saleID":    sale.ID,
			"productID": sale.ProductID,
			"quantity":  sale.Quantity,
			"unitPrice": sale.UnitPrice,
			"total":     sale.Total(),
			"saleDate":  sale.SaleDate.Format("2006-01-02"),
		},
	})
}

// RegisterSaleHandler records a manual sale with an operator-chosen quantity.
func RegisterSaleHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	var saleReq struct {
		ProductID uint `json:"productID" binding:"required"`
		Quantity  uint `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&saleReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "failed to bind request data",
			"error":   err.Error(),
		})
		return
	}

	sale, err := recordSale(db, saleReq.ProductID, saleReq.Quantity)
	if err != nil {
		respondSaleError(c, err)
		return
	}

	respondSaleRegistered(c, db, rdb, sale)
}

// QuickSaleHandler records a one-click sale of exactly one unit. It shares
// the stock-sufficiency rule and transaction with the manual path.
func QuickSaleHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	productID, err := strconv.ParseUint(c.Param("productID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid product ID",
			"error":   err.Error(),
		})
		return
	}

	sale, err := recordSale(db, uint(productID), 1)
	if err != nil {
		respondSaleError(c, err)
		return
	}

	respondSaleRegistered(c, db, rdb, sale)
}
