package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/tvqhuy/linhthu-arena/internal/api"
	"github.com/tvqhuy/linhthu-arena/internal/config"
	"github.com/tvqhuy/linhthu-arena/internal/constants"
	"github.com/tvqhuy/linhthu-arena/internal/logging"
	"github.com/tvqhuy/linhthu-arena/internal/service"
	"github.com/tvqhuy/linhthu-arena/internal/storage"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// Load the species configuration file (required). Path may be provided
	// via LINHTHU_CONFIG env var or defaults to ./linhthu_config.json in the
	// current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./linhthu_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{"config_path": configPath, "hint": "create a linhthu_config.json with a 'species_list' array of species objects (name,display_name,element,max_hp,attack,defense,speed,magic,capture_rate,skill{name,description,power,element}) and optional keys: capture_items, server.address, action_timeout_seconds, cors_origins"})
	}

	// Allow the DB path to be configured via LINHTHU_DB. Default to a
	// `data/` directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/linhthu.db"
	}
	db, err := storage.OpenAndMigrate(dbPath, cfg.Species)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	cache := storage.NewLeaderboardCache(os.Getenv(constants.EnvRedisAddr))
	repo := storage.NewSQLiteRepository(db, cfg.Species, cfg.CaptureItems, cache)
	handler := api.NewBattleHandler(repo, cfg.ActionTimeout)
	authHandler := api.NewAuthHandler(repo)

	// Background scanner: periodically forfeit battles whose action deadline
	// has passed. Expired battles end as fled with no winner and do not
	// affect trainer stats.
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			battles, err := repo.FindTimedOutBattles(time.Now())
			if err != nil {
				logging.Error("timeout scanner failed", err, nil)
				continue
			}
			for i := range battles {
				if err := service.HandleTimedOutBattle(repo, &battles[i]); err != nil {
					logging.Error("failed to expire battle", err, logging.Fields{constants.LogFieldBattleID: battles[i].ID})
				}
			}
		}
	}()

	router := gin.Default()

	if len(cfg.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
		router.Use(cors.New(corsCfg))
	}

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteSpecies, handler.ListSpecies)
		apiRoutes.GET(constants.RouteCaptureItems, handler.ListCaptureItems)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteVersion, api.Version)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RouteTrainerStats, handler.GetTrainerStats)
		protected.POST(constants.RouteTrainerStats, handler.UpdateTrainerProfile)
		protected.POST(constants.RouteBattles, handler.CreateBattle)
		protected.GET(constants.RouteBattleByCode, handler.GetBattle)
		protected.POST(constants.RouteBattleAction, handler.SubmitAction)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
