package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"disha/internal/cache"
	"disha/internal/config"
	"disha/internal/repository"
	"disha/internal/service"
	"disha/internal/transport/rest"
	"disha/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	engineCfg := config.DefaultEngineConfig()
	log.Printf("Engine thresholds:")
	log.Printf("  max attempts/domain: %d", engineCfg.MaxAttempts)
	log.Printf("  fit floor:           %d", engineCfg.FitFloor)
	log.Printf("  gap tolerance:       %.2f", engineCfg.GapTolerance)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	questionRepo := repository.NewQuestionRepo(db)
	courseRepo := repository.NewCourseRepo(db)
	profileRepo := repository.NewProfileRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb)
	catalogCache := cache.NewCatalogCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWTSecret)
	scorerSvc := service.NewScorerService(engineCfg)
	adaptiveSvc := service.NewAdaptiveService(engineCfg, questionRepo)
	careerSvc := service.NewCareerService(engineCfg)
	sessionSvc := service.NewSessionService(
		questionRepo, courseRepo, profileRepo,
		sessionCache, catalogCache,
		scorerSvc, adaptiveSvc, careerSvc, authSvc,
	)

	// Initialize WebSocket hub
	wsHub := ws.NewHub()

	// Create router with container
	container := &rest.Container{
		AuthService:    authSvc,
		SessionService: sessionSvc,
		QuestionRepo:   questionRepo,
		CourseRepo:     courseRepo,
		CatalogCache:   catalogCache,
		WSHub:          wsHub,
	}
	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST /v1/sessions")
		log.Println("  GET  /v1/assessment/general/questions")
		log.Println("  POST /v1/assessment/general/answers")
		log.Println("  GET  /v1/assessment/personalized/question")
		log.Println("  POST /v1/assessment/personalized/answers")
		log.Println("  POST /v1/assessment/subject/answers")
		log.Println("  GET  /v1/recommendations")
		log.Println("  GET  /v1/progress")
		log.Println("  WS   /v1/ws/assessment")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
