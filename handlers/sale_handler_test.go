package handlers

import (
	"Inventory/models"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func saleRouter(db *gorm.DB, rdb *redis.Client) *gin.Engine {
	router := gin.New()
	router.POST("/sales", func(c *gin.Context) {
		RegisterSaleHandler(c, db, rdb)
	})
	router.POST("/sales/quick/:productID", func(c *gin.Context) {
		QuickSaleHandler(c, db, rdb)
	})
	return router
}

func createProduct(t *testing.T, db *gorm.DB, name string, price, stock uint) *models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, Stock: stock}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func reloadProduct(t *testing.T, db *gorm.DB, id uint) *models.Product {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, id).Error)
	return &product
}

func countSales(t *testing.T, db *gorm.DB, productID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Sale{}).Where("product_id = ?", productID).Count(&count).Error)
	return count
}

func TestQuickSaleDeductsOneUnit(t *testing.T) {
	db := setupTestDB(t)
	router := saleRouter(db, testRedis())
	product := createProduct(t, db, "Diapers M", 100, 5)

	rec := performRequest(router, "POST", fmt.Sprintf("/sales/quick/%d", product.ID), nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message string `json:"message"`
		Sale    struct {
			Quantity  uint `json:"quantity"`
			UnitPrice uint `json:"unitPrice"`
			Total     uint `json:"total"`
		} `json:"sale"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "sale registered, 1 units deducted", resp.Message)
	assert.Equal(t, uint(1), resp.Sale.Quantity)
	assert.Equal(t, uint(100), resp.Sale.UnitPrice)
	assert.Equal(t, uint(100), resp.Sale.Total)

	assert.Equal(t, uint(4), reloadProduct(t, db, product.ID).Stock)
	assert.Equal(t, int64(1), countSales(t, db, product.ID))
}

func TestManualSaleInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	router := saleRouter(db, testRedis())
	product := models.Product{Name: "Wipes", Variant: "80 pack", Price: 30, Stock: 2}
	require.NoError(t, db.Create(&product).Error)

	rec := performRequest(router, "POST", "/sales", gin.H{
		"productID": product.ID,
		"quantity":  5,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "insufficient stock for Wipes (80 pack), current stock 2", resp.Message)

	// Nothing written: stock untouched, no sale row.
	assert.Equal(t, uint(2), reloadProduct(t, db, product.ID).Stock)
	assert.Equal(t, int64(0), countSales(t, db, product.ID))
}

func TestManualSaleUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	router := saleRouter(db, testRedis())

	rec := performRequest(router, "POST", "/sales", gin.H{
		"productID": 9999,
		"quantity":  1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestManualSaleRejectsZeroQuantity(t *testing.T) {
	db := setupTestDB(t)
	router := saleRouter(db, testRedis())
	product := createProduct(t, db, "Bottles", 15, 10)

	rec := performRequest(router, "POST", "/sales", gin.H{
		"productID": product.ID,
		"quantity":  0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int64(0), countSales(t, db, product.ID))
	assert.Equal(t, uint(10), reloadProduct(t, db, product.ID).Stock)
}

func TestUnitPriceCapturedAtSaleTime(t *testing.T) {
	db := setupTestDB(t)
	router := saleRouter(db, testRedis())
	product := createProduct(t, db, "Formula", 50, 10)

	rec := performRequest(router, "POST", "/sales", gin.H{
		"productID": product.ID,
		"quantity":  3,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Edit the price after the sale.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", 75).
		Error)

	var sale models.Sale
	require.NoError(t, db.First(&sale, "product_id = ?", product.ID).Error)
	assert.Equal(t, uint(50), sale.UnitPrice)
	assert.Equal(t, uint(150), sale.Total(), "historical total must not follow later price edits")
}

func TestStockLedgerAfterSaleSequence(t *testing.T) {
	db := setupTestDB(t)
	router := saleRouter(db, testRedis())
	product := createProduct(t, db, "Pacifier", 10, 10)

	for _, quantity := range []uint{3, 2, 1} {
		rec := performRequest(router, "POST", "/sales", gin.H{
			"productID": product.ID,
			"quantity":  quantity,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	// An oversell attempt in the middle of the sequence changes nothing.
	rec := performRequest(router, "POST", "/sales", gin.H{
		"productID": product.ID,
		"quantity":  100,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var soldTotal int64
	require.NoError(t, db.Model(&models.Sale{}).
		Where("product_id = ?", product.ID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&soldTotal).
		Error)

	stock := reloadProduct(t, db, product.ID).Stock
	assert.Equal(t, int64(6), soldTotal)
	assert.Equal(t, uint(10)-uint(soldTotal), stock)
	assert.GreaterOrEqual(t, int(stock), 0)
}

func TestQuickSaleOutOfStock(t *testing.T) {
	db := setupTestDB(t)
	router := saleRouter(db, testRedis())
	product := createProduct(t, db, "Rattle", 20, 0)

	rec := performRequest(router, "POST", fmt.Sprintf("/sales/quick/%d", product.ID), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, uint(0), reloadProduct(t, db, product.ID).Stock)
	assert.Equal(t, int64(0), countSales(t, db, product.ID))
}
