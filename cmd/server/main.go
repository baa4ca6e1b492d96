package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/vinishch/review-tracker/internal/config"
	"github.com/vinishch/review-tracker/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Init("info")
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)

	bootstrap(cfg)

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	registerRoutes(r, cfg)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Infof("Listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
