package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/akrin/seo-analyzer/analyzer"
	"github.com/akrin/seo-analyzer/logging"
	"github.com/akrin/seo-analyzer/middleware"
	"github.com/akrin/seo-analyzer/optimizer"
	"github.com/akrin/seo-analyzer/report"
	"github.com/akrin/seo-analyzer/seranking"
	"github.com/akrin/seo-analyzer/siteconfig"
	"github.com/akrin/seo-analyzer/stats"
)

var (
	seoOptimizer *optimizer.Optimizer
	pageFetcher  *analyzer.Fetcher
	generator    *report.Generator
	siteCfg      *siteconfig.SiteConfig
	blogPosts    []report.BlogPost
	pipeline     *stats.Storage
	rateLimiter  *middleware.RateLimiter
)

func loadEnv() {
	// Try to load .env.development first (for local development)
	if err := godotenv.Load(".env.development"); err != nil {
		// If .env.development doesn't exist, try regular .env
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

func setupGinMode() {
	// Set Gin mode based on environment variable
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		// Default to release mode if not specified
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func loadSiteConfig(dataDir string) *siteconfig.SiteConfig {
	path := filepath.Join(dataDir, "site.yaml")
	cfg, err := siteconfig.Load(path)
	if err != nil {
		log.Printf("No site config at %s, using built-in registry", path)
		return siteconfig.Default()
	}
	return cfg
}

func loadBlogPosts(dataDir string) []report.BlogPost {
	path := filepath.Join(dataDir, "posts.yaml")
	posts, err := report.LoadBlogPosts(path)
	if err != nil {
		log.Printf("No blog posts at %s, reports will cover registry pages only", path)
		return nil
	}
	return posts
}

func main() {
	// Load environment configuration
	loadEnv()

	// Set up Gin mode
	setupGinMode()

	dataDir := os.Getenv("SEO_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	// Initialize services
	var err error
	pipeline, err = stats.NewStorage(dataDir)
	if err != nil {
		log.Fatal("Failed to initialize stats storage:", err)
	}

	client := seranking.NewFromEnv()
	siteCfg = loadSiteConfig(dataDir)
	blogPosts = loadBlogPosts(dataDir)
	seoOptimizer = optimizer.New(client)
	pageFetcher = analyzer.NewFetcher()
	generator = report.NewGenerator(siteCfg, client, nil)
	rateLimiter = middleware.NewRateLimiter(2, 5) // 2 requests per second, bucket size of 5

	// Initialize statistics
	requestStats := logging.Initialize()

	// Initialize Gin router
	r := gin.Default()

	// Add middlewares
	r.Use(middleware.ErrorHandler())
	r.Use(rateLimiter.RateLimit())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.Use(middleware.StatsMiddleware(requestStats))

	// API routes
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			log.Printf("Health check request received from: %s\n", c.ClientIP())
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// Content analysis endpoints
		api.POST("/analyze", analyzeContent(requestStats))
		api.POST("/analyze/page", analyzePage(requestStats))

		// Report endpoints
		api.POST("/report", generateReport)
		api.GET("/report/markdown", generateMarkdownReport)

		// Metadata lookup
		api.GET("/metadata", pageMetadata)

		// Statistics endpoints
		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"requests": requestStats.GetStatistics(),
				"pipeline": pipeline.GetCurrentStats(),
			})
		})
	}

	// Get port from environment variable or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8082" // Default port
	}

	log.Printf("Server starting on http://localhost:%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func analyzeContent(requestStats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Printf("Analyze request received from: %s\n", c.ClientIP())
		var input optimizer.ContentInput

		if err := c.ShouldBindJSON(&input); err != nil || input.Title == "" || input.Content == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Title and content are required",
			})
			return
		}

		start := time.Now()
		result := seoOptimizer.AnalyzeContent(c.Request.Context(), input)
		pipeline.RecordAnalyzeRequest()
		requestStats.TrackAnalyze(input.FocusKeyword, float64(time.Since(start).Milliseconds()), false)

		c.JSON(http.StatusOK, result)
	}
}

func analyzePage(requestStats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			URL          string `json:"url" binding:"required,url"`
			FocusKeyword string `json:"focusKeyword"`
		}

		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid URL provided",
			})
			return
		}

		page, err := pageFetcher.FetchPage(c.Request.Context(), request.URL)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Failed to fetch page: " + err.Error(),
			})
			return
		}

		start := time.Now()
		input := page.ContentInput()
		input.FocusKeyword = request.FocusKeyword
		result := seoOptimizer.AnalyzeContent(c.Request.Context(), input)
		pipeline.RecordAnalyzeRequest()
		requestStats.TrackAnalyze(request.FocusKeyword, float64(time.Since(start).Milliseconds()), false)

		c.JSON(http.StatusOK, result)
	}
}

func generateReport(c *gin.Context) {
	var request struct {
		IncludeDomainAnalysis bool   `json:"includeDomainAnalysis"`
		BaseURL               string `json:"baseUrl"`
	}
	// An empty body selects the defaults.
	_ = c.ShouldBindJSON(&request)

	result := generator.Generate(c.Request.Context(), blogPosts, report.Options{
		IncludeDomainAnalysis: request.IncludeDomainAnalysis,
		BaseURL:               request.BaseURL,
	})
	pipeline.RecordReport(result.WebsiteAnalysis.TotalPages, result.BlogAnalysis.TotalPosts)

	c.JSON(http.StatusOK, result)
}

func generateMarkdownReport(c *gin.Context) {
	result := generator.Generate(c.Request.Context(), blogPosts, report.Options{})
	pipeline.RecordReport(result.WebsiteAnalysis.TotalPages, result.BlogAnalysis.TotalPosts)

	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.ExportMarkdown(result)))
}

func pageMetadata(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		path = "/"
	}

	metadata := siteCfg.GenerateMetadata(path, "", "", nil)
	performance := siteCfg.AnalyzePagePerformance(path)

	c.JSON(http.StatusOK, gin.H{
		"metadata":    metadata,
		"performance": performance,
	})
}
