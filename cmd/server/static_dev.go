//go:build !embed
// +build !embed

package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

const devDistDir = "./web/dist"

// setupStaticFiles serves a local site build when one exists (development, no embedding)
func setupStaticFiles(router *gin.Engine) {
	if _, err := os.Stat(devDistDir); err == nil {
		log.Printf("🔧 Serving frontend from %s", devDistDir)
		router.Static("/assets", devDistDir+"/assets")
		router.StaticFile("/", devDistDir+"/index.html")
	} else {
		log.Println("🔧 No local frontend build - serving the API only")
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Frontend is not bundled with this build",
			"hint":    "Build the site into web/dist, or run the builder CLI: go run ./cmd/builder wizard",
		})
	})
}
