package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"pricelist-profit/internal/announce"
	"pricelist-profit/internal/api/handlers"
	"pricelist-profit/internal/api/middleware"
	"pricelist-profit/internal/api/models"
	"pricelist-profit/internal/config"
	"pricelist-profit/internal/logging"
	"pricelist-profit/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_FILE"), "Path to YAML config (optional)")
	flag.Parse()

	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
	}
	defer logging.Sync()

	ledger, err := store.OpenLedger(cfg.Ledger.Driver, cfg.Storage.LedgerFile, cfg.Ledger.SQLitePath)
	if err != nil {
		logging.Logger.Fatal("failed to open upload ledger", zap.Error(err))
	}
	defer ledger.Close()

	deps := handlers.Deps{
		Config:    cfg,
		Uploads:   store.NewUploadStore(cfg.Storage.UploadDir, ledger),
		Fees:      store.NewFeeRepository(cfg.Storage.FeeFile, cfg.Storage.FeeHistoryDir),
		Rates:     store.NewRateRepository(cfg.Storage.RatesFile, cfg.RatesHistoryDir()),
		Announcer: announce.NewSyncer(),
	}
	logging.Info("storage ready",
		zap.String("upload_dir", cfg.Storage.UploadDir),
		zap.String("ledger", cfg.Ledger.Driver),
		zap.String("fee_file", cfg.Storage.FeeFile),
		zap.String("rates_file", cfg.Storage.RatesFile),
	)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = 32 << 20

	// Apply middleware
	router.Use(middleware.CORS(cfg.Server.CORSOrigins...))
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health)
	handlers.RegisterRoutes(router.Group("/api/v1"), deps)

	// Serve static files from web/dist (if it exists)
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

		// SPA routing: everything outside /api falls back to index.html.
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, models.ErrorResponse{
					Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"},
				})
				return
			}
			c.File(staticDir + "/index.html")
		})
		logging.Info("serving static files", zap.String("dir", staticDir))
	} else {
		logging.Debug("static directory not found, skipping static file serving", zap.String("dir", staticDir))
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logging.Info("starting API server", zap.String("addr", addr), zap.String("env", cfg.Server.Env))
	if err := router.Run(addr); err != nil {
		logging.Logger.Fatal("server stopped", zap.Error(err))
	}
}
