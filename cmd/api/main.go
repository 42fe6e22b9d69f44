package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/alexisallendez04/appBarberos-sub001/internal/config"
	dbpkg "github.com/alexisallendez04/appBarberos-sub001/internal/db"
	"github.com/alexisallendez04/appBarberos-sub001/internal/jobs"
	"github.com/alexisallendez04/appBarberos-sub001/internal/logger"
	"github.com/alexisallendez04/appBarberos-sub001/internal/middleware"
	"github.com/alexisallendez04/appBarberos-sub001/internal/routes"
)

func main() {

	log := logger.New()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg, log)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		log.Info().Str("addr", cfg.RedisAddr).Msg("availability cache enabled")
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, log)

	if cfg.AutoCompleteCron != "" {
		sweep := jobs.NewAutoComplete(db, log)
		if _, err := sweep.Start(cfg.AutoCompleteCron); err != nil {
			log.Fatal().Err(err).Msg("failed to start autocomplete job")
		}
		log.Info().Str("cron", cfg.AutoCompleteCron).Msg("autocomplete sweep scheduled")
	}

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
