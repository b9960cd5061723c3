package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dtroode/authkeeper/internal/api/http/handler"
	"github.com/dtroode/authkeeper/internal/api/http/router"
	httpServer "github.com/dtroode/authkeeper/internal/api/http/server"
	"github.com/dtroode/authkeeper/internal/config"
	"github.com/dtroode/authkeeper/internal/jobs/sweeper"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
	"github.com/dtroode/authkeeper/internal/repository/memory"
	"github.com/dtroode/authkeeper/internal/repository/postgres"
	redisrepo "github.com/dtroode/authkeeper/internal/repository/redis"
	"github.com/dtroode/authkeeper/internal/server"
	"github.com/dtroode/authkeeper/internal/service"
	"github.com/dtroode/authkeeper/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	sessionRepo := postgres.NewSessionRepository(db)
	userRepo := postgres.NewUserRepository(db)
	codec := token.NewJWT(cfg.JWT.Secret)

	var revocationStore model.RevocationStore
	if cfg.Redis.Enabled {
		revocationStore = redisrepo.NewRevocationStore(redisrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB))
		logger.Info("using redis revocation store", "addr", cfg.Redis.Addr)
	} else {
		revocationStore = memory.NewRevocationStore()
		logger.Info("using in-process revocation store")
	}

	tokenService := service.NewTokenService(codec, sessionRepo, revocationStore, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, logger)
	authService := service.NewAuth(service.NewPasswordAuth(userRepo), tokenService, logger)

	sweepJob := sweeper.New(sessionRepo, revocationStore, cfg.Sweep.Interval, logger)
	go sweepJob.Start(ctx)

	authHandler := handler.NewAuth(authService, tokenService, cfg.Callback.Secret, logger)
	r := router.New(authHandler, tokenService, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
