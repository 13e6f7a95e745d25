package handlers

import (
	"Inventory/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Products below this stock count show up in the dashboard alert list.
const lowStockThreshold = 50

func sumSaleTotals(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Sale{}).
		Select("COALESCE(SUM(quantity * unit_price), 0)")
}

// DashboardHandler serves the staff dashboard KPIs: catalog counts, low-stock
// alerts and today's sales figures.
func DashboardHandler(c *gin.Context, db *gorm.DB) {
	var productCount int64
	if err := db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to count products",
			"error":   err.Error(),
		})
		return
	}

	var categoryCount int64
	if err := db.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to count categories",
			"error":   err.Error(),
		})
		return
	}

	var lowStock []struct {
		Id      uint
		Name    string
		Variant string
		Stock   uint
	}
	err := db.Model(&models.Product{}).
		Select("Id", "Name", "Variant", "Stock").
		Where("stock < ?", lowStockThreshold).
		Order("stock").
		Find(&lowStock).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to read low stock products",
			"error":   err.Error(),
		})
		return
	}

	dayStart := today()
	dayEnd := dayStart.AddDate(0, 0, 1)

	var revenueToday uint
	err = sumSaleTotals(db).
		Where("sale_date >= ? AND sale_date < ?", dayStart, dayEnd).
		Scan(&revenueToday).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to compute today's revenue",
			"error":   err.Error(),
		})
		return
	}

	var transactionsToday int64
	err = db.Model(&models.Sale{}).
		Where("sale_date >= ? AND sale_date < ?", dayStart, dayEnd).
		Count(&transactionsToday).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to count today's sales",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "dashboard read successfully",
		"productCount":      productCount,
		"categoryCount":     categoryCount,
		"lowStockProducts":  lowStock,
		"revenueToday":      revenueToday,
		"transactionsToday": transactionsToday,
	})
}

// SalesReportHandler lists all sales newest first, with the overall revenue
// and a per-product quantity ranking.
func SalesReportHandler(c *gin.Context, db *gorm.DB) {
	var sales []models.Sale
	err := db.Preload("Product").
		Order("sale_date DESC, id DESC").
		Find(&sales).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to read sales",
			"error":   err.Error(),
		})
		return
	}

	saleList := make([]gin.H, 0, len(sales))
	for i := range sales {
		sale := &sales[i]
		saleList = append(saleList, gin.H{
			"saleID":    sale.ID,
			"product":   sale.Product.Name,
			"variant":   sale.Product.Variant,
			"quantity":  sale.Quantity,
			"unitPrice": sale.UnitPrice,
			"total":     sale.Total(),
			"saleDate":  sale.SaleDate.Format("2006-01-02"),
		})
	}

	var totalRevenue uint
	if err := sumSaleTotals(db).Scan(&totalRevenue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to compute total revenue",
			"error":   err.Error(),
		})
		return
	}

	var grouped []struct {
		Name          string `json:"name"`
		Variant       string `json:"variant"`
		TotalQuantity uint   `json:"totalQuantity"`
	}
	err = db.Model(&models.Sale{}).
		Joins("JOIN products ON products.id = sales.product_id").
		Select("products.name AS name, products.variant AS variant, SUM(sales.quantity) AS total_quantity").
		Group("products.name, products.variant").
		Order("total_quantity DESC").
		Scan(&grouped).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to group sales",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "sales report read successfully",
		"sales":            saleList,
		"totalRevenue":     totalRevenue,
		"salesByProduct":   grouped,
		"transactionCount": len(sales),
	})
}
