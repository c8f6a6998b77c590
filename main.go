package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"fountains-be/config"
	"fountains-be/routes"
	"fountains-be/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if len(os.Args) > 2 && os.Args[1] == "seed" {
		if err := utils.RunSeed(os.Args[2]); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		return
	}

	// Touching the collections up front creates the data directory and
	// empty files before the first request.
	config.GetCollection("fountains")
	config.GetCollection("reports")
	config.ConnectRedis()

	r := gin.Default()
	r.Use(cors.Default())

	routes.FountainRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// SPA fallback: non-API paths serve the frontend build from ./public
	// when it exists.
	if _, err := os.Stat("./public"); err == nil {
		r.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
				return
			}
			file := filepath.Join("./public", filepath.Clean(c.Request.URL.Path))
			if info, err := os.Stat(file); err == nil && !info.IsDir() {
				c.File(file)
				return
			}
			c.File(filepath.Join("./public", "index.html"))
		})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("Fountains API running on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
