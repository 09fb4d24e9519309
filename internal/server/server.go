package server

import (
	"context"
	"log"
	"strings"
	"time"

	"anoa.com/jelajahpath/internal/config"
	"anoa.com/jelajahpath/internal/middleware"

	catalogHttp "anoa.com/jelajahpath/internal/modules/catalog/delivery/http"
	catalogRepo "anoa.com/jelajahpath/internal/modules/catalog/repository"
	catalogService "anoa.com/jelajahpath/internal/modules/catalog/service"

	progressHttp "anoa.com/jelajahpath/internal/modules/progress/delivery/http"
	progressRepo "anoa.com/jelajahpath/internal/modules/progress/repository"
	progressService "anoa.com/jelajahpath/internal/modules/progress/service"

	rewardRepo "anoa.com/jelajahpath/internal/modules/reward/repository"

	searchHttp "anoa.com/jelajahpath/internal/modules/search/delivery/http"
	searchService "anoa.com/jelajahpath/internal/modules/search/service"

	statsHttp "anoa.com/jelajahpath/internal/modules/stats/delivery/http"
	statsRepo "anoa.com/jelajahpath/internal/modules/stats/repository"
	statsService "anoa.com/jelajahpath/internal/modules/stats/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	pathRepository := catalogRepo.NewPathRepository(db)
	catalogSvc := catalogService.NewCatalogService(pathRepository)
	catalogHandler := catalogHttp.NewCatalogHandler(catalogSvc)

	meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := searchService.NewPathSearchService(meiliClient)
	searchHandler := searchHttp.NewSearchHandler(searchSvc)

	progressRepository := progressRepo.NewProgressRepository(db)
	progressSvc := progressService.NewProgressService(progressRepository, pathRepository, redisClient, cfg.VisitRateLimit)
	progressHandler := progressHttp.NewProgressHandler(progressSvc)

	itemRepository := rewardRepo.NewItemRepository(db)

	statsRepository := statsRepo.NewStatsRepository(db)
	statsSvc := statsService.NewStatsService(statsRepository, pathRepository, itemRepository, redisClient, cfg.LeaderboardCacheTTL)
	statsHandler := statsHttp.NewStatsHandler(statsSvc)

	// Sync the published catalog into the search index on startup; the admin
	// collaborator keeps it current afterwards.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		paths, err := pathRepository.FindPublished(ctx)
		if err != nil {
			log.Printf("❌ Error loading paths for search sync: %v", err)
			return
		}
		for i := range paths {
			if err := searchSvc.IndexPath(&paths[i]); err != nil {
				log.Printf("❌ Error indexing path %s: %v", paths[i].ID, err)
			}
		}
	}()

	router := gin.New()

	setupCORS(router, cfg)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	api.GET("/paths", catalogHandler.GetPaths)
	api.GET("/paths/:id", catalogHandler.GetPathByID)
	api.GET("/user/leaderboard", authMiddleware.OptionalAuth(), statsHandler.GetLeaderboard)

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/user/visits", progressHandler.RecordVisit)
		protected.GET("/user/paths/:path_id/progress", progressHandler.GetPathProgress)

		protected.GET("/user/stats", statsHandler.GetUserStats)
		protected.GET("/user/rewards", statsHandler.GetRewards)

		protected.GET("/search/token", searchHandler.GetSearchToken)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
