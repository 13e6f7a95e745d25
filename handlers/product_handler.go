package handlers

import (
	"Inventory/models"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type catalogEntry struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Variant  string `json:"variant"`
	Price    uint   `json:"price"`
	Stock    uint   `json:"stock"`
	ImageURL string `json:"imageURL"`
	Category string `json:"category"`
}

func catalogEntryFromProduct(product *models.Product) catalogEntry {
	entry := catalogEntry{
		ID:       product.ID,
		Name:     product.Name,
		Variant:  product.Variant,
		Price:    product.Price,
		Stock:    product.Stock,
		ImageURL: product.ImageURL,
	}
	if product.Category != nil {
		entry.Category = product.Category.Name
	}
	return entry
}

// GetCatalogHandler serves the read-only purchase catalog: in-stock products
// only, name-ordered. Reads go through the redis cache; a cold or unreachable
// cache falls back to the database and repopulates best-effort.
func GetCatalogHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	cachedProducts, err := rdb.ZRange(c, productCacheKey, 0, -1).Result()
	if err != nil || len(cachedProducts) == 0 {
		var products []models.Product
		err = db.Preload("Category").Order("name").Find(&products).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "failed to read product catalog",
				"error":   err.Error(),
			})
			return
		}

		rebuildProductCache(c, rdb, products)

		var catalog []catalogEntry
		for i := range products {
			if products[i].Stock == 0 {
				continue
			}
			catalog = append(catalog, catalogEntryFromProduct(&products[i]))
		}

		c.JSON(http.StatusOK, gin.H{
			"message":    "catalog read successfully",
			"products":   catalog,
			"totalCount": len(catalog),
		})
		return
	}

	var catalog []catalogEntry
	for _, cached := range cachedProducts {
		var product models.Product
		if err := json.Unmarshal([]byte(cached), &product); err != nil {
			log.Printf("failed to deserialize cached product: %v\n", err)
			continue
		}
		if product.Stock == 0 {
			continue
		}
		catalog = append(catalog, catalogEntryFromProduct(&product))
	}

	// The sorted set is scored by ID; the catalog lists by name.
	sort.Slice(catalog, func(i, j int) bool {
		return catalog[i].Name < catalog[j].Name
	})

	c.JSON(http.StatusOK, gin.H{
		"message":    "catalog read successfully",
		"products":   catalog,
		"totalCount": len(catalog),
	})
}

// GetProductDataHandler serves the public product detail.
func GetProductDataHandler(c *gin.Context, db *gorm.DB) {
	productID := c.Param("productID")

	var product models.Product
	err := db.Preload("Category").First(&product, "id = ?", productID).Error
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
		"product": catalogEntryFromProduct(&product),
	})
}
