package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/telugujayaprakash/myprofileDashboard/config"
	"github.com/telugujayaprakash/myprofileDashboard/controllers"
	"github.com/telugujayaprakash/myprofileDashboard/database"
	"github.com/telugujayaprakash/myprofileDashboard/helper"
	"github.com/telugujayaprakash/myprofileDashboard/middlewares"
	"github.com/telugujayaprakash/myprofileDashboard/routes"
	"github.com/telugujayaprakash/myprofileDashboard/services"
	"github.com/telugujayaprakash/myprofileDashboard/stores"
)

func main() {
	// Missing .env is fine in deployments that set real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	client, db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("mongo connect failed", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("mongo disconnect failed", zap.Error(err))
		}
	}()

	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("index creation failed", zap.Error(err))
	}

	userStore := stores.NewUserStore(db)
	profileStore := stores.NewProfileStore(db)
	postStore := stores.NewPostStore(db)
	otpStore := stores.NewOTPStore(db)

	mailer := helper.NewMailer(cfg)

	authService := services.NewAuthService(userStore, profileStore, otpStore, mailer, cfg.JWTSecret, cfg.TokenTTL, cfg.OTPTTL, log)
	followService := services.NewFollowService(userStore, profileStore, log)
	profileService := services.NewProfileService(userStore, profileStore, postStore)
	postService := services.NewPostService(userStore, profileStore, postStore)
	interactionService := services.NewInteractionService(userStore, postStore)
	searchService := services.NewSearchService(userStore, profileStore, postStore)

	authController := controllers.NewAuthController(authService)
	profileController := controllers.NewProfileController(profileService, followService)
	postController := controllers.NewPostController(postService, interactionService, cfg.FrontendURL)
	searchController := controllers.NewSearchController(searchService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	requireAuth := middlewares.RequireAuth(cfg.JWTSecret, userStore)
	optionalAuth := middlewares.OptionalAuth(cfg.JWTSecret, userStore)

	routes.AuthRouter(router, authController)
	routes.UserRouter(router, profileController, requireAuth, optionalAuth)
	routes.PostRouter(router, postController, requireAuth)
	routes.SearchRouter(router, searchController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
}
