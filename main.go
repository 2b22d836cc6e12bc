package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scenery/config"
	"scenery/cron"
	"scenery/handlers"
	"scenery/routes"
	"scenery/services/decision"
	"scenery/services/extractor"
	"scenery/services/generation"
	"scenery/services/geo"
	"scenery/services/livesearch"
	"scenery/services/localdb"
	"scenery/services/session"
	"scenery/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()

	hotelRepo, err := localdb.Open(config.AppConfig.HotelDBPath)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to open hotel index at %s: %v", config.AppConfig.HotelDBPath, err)
	}

	// Extraction pipeline.
	fast := extractor.NewFastExtractor()
	if cities, err := hotelRepo.ListCities(context.Background()); err == nil && len(cities) > 0 {
		fast.SetCities(cities)
	}
	pool := extractor.NewPool(config.AppConfig.ClassifierWorkers)

	// Generation chain: Gemini primary, HTTP fallback; either may be absent.
	var primary generation.TextGenerator
	if config.AppConfig.GeminiAPIKey != "" {
		gem, err := generation.NewGeminiClient(context.Background(), config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Warn("Gemini client unavailable, relying on fallback generator", zap.Error(err))
		} else {
			primary = gem
		}
	}
	var secondary generation.TextGenerator
	if config.AppConfig.FallbackLLMURL != "" {
		secondary = generation.NewHTTPGenerator(config.AppConfig.FallbackLLMURL, config.AppConfig.FallbackLLMKey, config.AppConfig.FallbackLLMModel)
	}
	failover := generation.NewFailover(primary, secondary, generation.NewProviderHealth(), logger)
	ranker := generation.NewRanker(failover, logger)

	liveClient := livesearch.NewClient(config.AppConfig.RapidAPIKey, config.AppConfig.RapidAPIHost, config.AppConfig.CurrencyCode)
	geoResolver := geo.NewResolver()

	sessionStore := session.NewRedisStore(
		utils.GetSessionCacheClient(),
		time.Duration(config.AppConfig.SessionTTLSeconds)*time.Second,
		config.AppConfig.SessionMaxTurns,
		logger,
	)

	engine := &decision.Engine{
		Fast:       fast,
		Classifier: extractor.KeywordClassifier{},
		Slotter:    extractor.RegexSlotExtractor{Fast: fast},
		Pool:       pool,
		Local:      hotelRepo,
		Live:       liveClient,
		Geo:        geoResolver,
		Enricher:   ranker,
		Sessions:   sessionStore,
		Cfg: decision.Config{
			LocalTarget:      time.Duration(config.AppConfig.LocalTargetMS) * time.Millisecond,
			LiveTargetMin:    time.Duration(config.AppConfig.LiveTargetMinMS) * time.Millisecond,
			LiveTargetMax:    time.Duration(config.AppConfig.LiveTargetMaxMS) * time.Millisecond,
			EnrichmentBudget: time.Duration(config.AppConfig.EnrichmentBudgetMS) * time.Millisecond,
			SafetyMargin:     time.Duration(config.AppConfig.SafetyMarginMS) * time.Millisecond,
			ClassifierWait:   time.Duration(config.AppConfig.ClassifierWaitMS) * time.Millisecond,
			FollowupMaxWords: config.AppConfig.FollowupMaxWords,
		},
		Logger: logger,
	}

	hb := &handlers.HandlerBundle{
		ChatHandler:          handlers.ChatHandler(engine),
		VoiceAskHandler:      handlers.VoiceAskHandler(failover),
		LocalInsightsHandler: handlers.LocalInsightsHandler(hotelRepo),
		LiveInsightsHandler:  handlers.LiveInsightsHandler(liveClient, geoResolver),
		HealthHandler:        handlers.HealthHandler(),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, hb)

	utils.StartHealthMonitor(utils.GetSessionCacheClient(), hotelRepo.DB())
	cron.InitMaintenanceWorker(sessionStore, hotelRepo, fast)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
	logger.Info("main: stopped")
}
