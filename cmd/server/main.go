package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/TheJegede/Negotiator/internal/config"
	cronrunner "github.com/TheJegede/Negotiator/internal/cron"
	"github.com/TheJegede/Negotiator/internal/deal"
	"github.com/TheJegede/Negotiator/internal/evaluate"
	"github.com/TheJegede/Negotiator/internal/genai"
	"github.com/TheJegede/Negotiator/internal/handler"
	"github.com/TheJegede/Negotiator/internal/logger"
	"github.com/TheJegede/Negotiator/internal/metrics"
	"github.com/TheJegede/Negotiator/internal/service"
	"github.com/TheJegede/Negotiator/internal/session"

	_ "github.com/TheJegede/Negotiator/docs"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("NEG_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("NEG_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	rubric, err := evaluate.RubricFromConfig(cfg.Rubric)
	if err != nil {
		logger.Fatal("rubric config invalid", zap.Error(err))
	}

	generator, err := genai.New(cfg.AI)
	if err != nil {
		logger.Fatal("provider init failed", zap.Error(err))
	}

	sessions := session.NewManager(&deal.Generator{Config: cfg.Deal})
	chatService := &service.ChatService{
		Sessions:     sessions,
		Generator:    generator,
		Evaluator:    evaluate.New(rubric),
		Logger:       logger,
		MaxSentences: cfg.AI.MaxSentences,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{Sessions: sessions}
	healthHandler.Register(engine)
	sessionHandler := &handler.SessionHandler{Chat: chatService}
	sessionHandler.Register(engine)
	chatHandler := &handler.ChatHandler{Chat: chatService, Logger: logger}
	chatHandler.Register(engine)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	_, err = cronRunner.Add(cfg.Session.SweepSpec, func(ctx context.Context) {
		if removed := sessions.Sweep(cfg.Session.MaxIdle); removed > 0 {
			metrics.SessionsSwept.Add(float64(removed))
			logger.Info("idle sessions swept", zap.Int("removed", removed))
		}
	})
	if err != nil {
		logger.Warn("cron register session sweep failed", zap.Error(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting",
			zap.String("addr", cfg.Server.HTTPAddr),
			zap.String("provider", cfg.AI.Provider))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
