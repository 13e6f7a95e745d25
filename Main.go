package main

import (
	"Inventory/config"
	"Inventory/routers"
)

func main() {
	db, err := config.SetupMySQLConnection()
	if err != nil {
		panic("failed to connect to the database")
	}
	defer func() {
		dbInstance, _ := db.DB()
		_ = dbInstance.Close()
	}()

	rdb, err := config.SetupRedisConnection()
	if err != nil {
		panic("failed to connect to redis")
	}
	defer rdb.Close()

	router := routers.SetupRouters(db, rdb)
	router.Run(":3000")
}
