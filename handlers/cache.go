package handlers

import (
	"Inventory/models"
	"encoding/json"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Product catalog cache: a sorted set scored by product ID. The database is
// the source of truth; every cache write here is best-effort and the catalog
// read path falls back to the database when the cache is cold or unreachable.
const productCacheKey = "products"

func refreshProductCache(c *gin.Context, rdb *redis.Client, product *models.Product) {
	productJSON, err := json.Marshal(product)
	if err != nil {
		log.Printf("failed to serialize product %d for cache: %v\n", product.ID, err)
		return
	}

	score := strconv.Itoa(int(product.ID))
	if err := rdb.ZRemRangeByScore(c, productCacheKey, score, score).Err(); err != nil {
		log.Printf("failed to replace product %d in cache: %v\n", product.ID, err)
		return
	}

	err = rdb.ZAdd(c, productCacheKey, redis.Z{
		Score:  float64(product.ID),
		Member: productJSON,
	}).Err()
	if err != nil {
		log.Printf("failed to cache product %d: %v\n", product.ID, err)
	}
}

func removeProductFromCache(c *gin.Context, rdb *redis.Client, productID uint) {
	score := strconv.Itoa(int(productID))
	if err := rdb.ZRemRangeByScore(c, productCacheKey, score, score).Err(); err != nil {
		log.Printf("failed to remove product %d from cache: %v\n", productID, err)
	}
}

func rebuildProductCache(c *gin.Context, rdb *redis.Client, products []models.Product) {
	if err := rdb.Del(c, productCacheKey).Err(); err != nil {
		log.Printf("failed to clear product cache: %v\n", err)
		return
	}

	for _, product := range products {
		productJSON, err := json.Marshal(product)
		if err != nil {
			log.Printf("failed to serialize product %d for cache: %v\n", product.ID, err)
			continue
		}

		err = rdb.ZAdd(c, productCacheKey, redis.Z{
			Score:  float64(product.ID),
			Member: productJSON,
		}).Err()
		if err != nil {
			log.Printf("failed to cache product %d: %v\n", product.ID, err)
			return
		}
	}
}
