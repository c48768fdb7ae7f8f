package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-gin-mongo-shop/internal/core/auth"
	"go-gin-mongo-shop/internal/core/config"
	"go-gin-mongo-shop/internal/core/logger"
	"go-gin-mongo-shop/internal/core/server"
	"go-gin-mongo-shop/internal/repo"
	"go-gin-mongo-shop/internal/service"
	"go-gin-mongo-shop/internal/transport/http/handler"
	"go-gin-mongo-shop/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.ToWriter(log.Named("gin"), zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log.Named("gin"), zapcore.ErrorLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("api exited", zap.Error(err))
		cleanup()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	openCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.DB.ConnectTimeoutSec+5)*time.Second)
	store, err := repo.Open(openCtx, cfg.DB, log)
	cancel()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("store close", zap.Error(err))
		}
	}()
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    cfg.JWT.TTL(),
	}

	authSvc := service.NewAuthService(store.Users, jwter)
	productSvc := service.NewProductService(store.Products)
	cartSvc := service.NewCartService(store.Users, store.Carts, store.Products)

	h := cfg.App.HTTP
	r := router.NewAPIEngine(log, router.Options{
		RequestTimeout: time.Duration(h.RequestTimeoutSec) * time.Second,
		MaxBodyBytes:   h.MaxBodyBytes,
		TokenHeader:    cfg.JWT.Header,
	}, jwter, authSvc,
		handler.NewAuthHandler(authSvc),
		handler.NewProductHandler(productSvc),
		handler.NewCartHandler(cartSvc),
	)

	addr := server.Addr(h.Host, h.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)

	host4human := h.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(h.Port)
	log.Info("shop api starting",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("metrics", baseURL+"/metrics"),
	)

	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		return err
	}
	log.Info("shop api stopped gracefully")
	return nil
}
