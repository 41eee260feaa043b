package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buildmyhome/internal/config"
	"buildmyhome/internal/handler"
	"buildmyhome/internal/repository"
	"buildmyhome/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("BuildMyHome API")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Debug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	repo, err := openRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer repo.Close()

	// Initialize services
	catalogService := service.NewCatalogService(repo, cfg.Catalog.SimilarDefaultLimit, cfg.Catalog.SimilarMaxLimit)
	estimateService := service.NewEstimateService(cfg.Debug())
	inquiryService := service.NewInquiryService(repo)
	savedPlanService := service.NewSavedPlanService(repo)

	log.Println("✅ Services initialized")

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	corsConfig.AllowMethods = cfg.Server.AllowedMethods
	corsConfig.AllowHeaders = cfg.Server.AllowedHeaders
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "buildmyhome-api",
			"storage":    cfg.Storage.Driver,
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	handler.NewHandlers(catalogService, estimateService, inquiryService, savedPlanService).
		Register(router.Group("/api/v1"))

	// Serve static files (frontend)
	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: router}
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API: http://localhost:%d/api/v1", cfg.Server.Port)

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Forced shutdown: %v", err)
	}
	log.Println("✅ Server stopped")
}

// openRepository connects the configured storage backend and loads the seed catalog
func openRepository(cfg *config.Config) (repository.Repository, error) {
	seed, err := repository.LoadSeed(cfg.Storage.SeedFile)
	if err != nil {
		return nil, err
	}

	if cfg.Storage.Driver == "memory" {
		log.Println("⚠️  Using in-memory storage - data is lost on restart")
		return repository.NewMemoryRepository(seed), nil
	}

	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("✅ Connected to PostgreSQL database")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repo.EnsureSchema(ctx); err != nil {
		repo.Close()
		return nil, err
	}
	seeded, err := repo.SeedIfEmpty(ctx, seed)
	if err != nil {
		repo.Close()
		return nil, err
	}
	if seeded {
		log.Printf("🌱 Seeded catalog: %d packages, %d materials, %d projects",
			len(seed.Packages), len(seed.Materials), len(seed.Projects))
	}
	return repo, nil
}
