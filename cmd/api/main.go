package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthify-app/healthify-api/internal/config"
	dbpkg "github.com/healthify-app/healthify-api/internal/db"
	"github.com/healthify-app/healthify-api/internal/mailer"
	"github.com/healthify-app/healthify-api/internal/middleware"
	"github.com/healthify-app/healthify-api/internal/ratelimit"
	"github.com/healthify-app/healthify-api/internal/routes"
	"github.com/healthify-app/healthify-api/internal/storage"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	limiter := ratelimit.New(cfg.Redis)
	defer limiter.Close()

	mail := mailer.NewSMTP(cfg.SMTP)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var photos storage.Storage
	switch cfg.Storage.Driver {
	case "s3":
		photos = storage.NewS3(cfg.Storage)
	default:
		local, err := storage.NewLocal(cfg.Storage.LocalDir)
		if err != nil {
			log.Fatalf("failed to init upload dir: %v", err)
		}
		photos = local

		r.Static("/uploads", local.Dir())
	}

	routes.RegisterRoutes(r, db, cfg, routes.Deps{
		Mailer:  mail,
		Storage: photos,
		Limiter: limiter,
	})

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
