package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rzere/discover-kackar-sub000/config"
	"github.com/rzere/discover-kackar-sub000/database"
	"github.com/rzere/discover-kackar-sub000/internal/api/mediaapi"
	routes "github.com/rzere/discover-kackar-sub000/internal/app/http"
	"github.com/rzere/discover-kackar-sub000/internal/ingest"
	"github.com/rzere/discover-kackar-sub000/internal/jobs"
	"github.com/rzere/discover-kackar-sub000/internal/storage"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	store, err := storage.NewDiskStore(config.STORAGE_ROOT)
	if err != nil {
		log.WithError(err).Fatal("failed to init storage")
	}

	ingestor := ingest.NewIngestor(database.DB, store, ingest.NewWebPCodec(), log)
	mediaapi.Setup(ingestor)

	cleaner := jobs.NewCleaner(database.DB, store, log)
	scheduler := cleaner.Start()
	defer scheduler.Stop()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// originals and derivatives served straight from disk
	r.Static("/uploads", store.Root())

	routes.RegisterRoutes(r)

	r.Run(":" + config.PORT)
}
