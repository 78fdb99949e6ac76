package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/accounthub/user-service/internal/common/clock"
	"github.com/accounthub/user-service/internal/common/config"
	commoncrypto "github.com/accounthub/user-service/internal/common/crypto"
	"github.com/accounthub/user-service/internal/common/db"
	commonhttp "github.com/accounthub/user-service/internal/common/http"
	"github.com/accounthub/user-service/internal/common/logger"
	srv "github.com/accounthub/user-service/internal/common/server"
	userhttp "github.com/accounthub/user-service/internal/user/http"
	userrepo "github.com/accounthub/user-service/internal/user/repository"
	"github.com/accounthub/user-service/internal/user/service"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "user", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.LoadUserConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := db.RunMigrations(context.Background(), cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	repo := userrepo.NewPgRepository(pool)
	accountService := service.NewAccountService(service.AccountServiceDeps{
		Repo:        repo,
		Hasher:      &commoncrypto.BcryptHasher{},
		IDGenerator: commoncrypto.NewUUIDGenerator(),
		Tokens:      service.NewTokenIssuer(cfg.JWTSecret),
		Clock:       clock.NewRealClock(),
		Log:         log,
	})

	handler := userhttp.NewHandler(accountService, cfg, log)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.Handler())

	finalHandler := commonhttp.BuildBaseHandler(log, mux)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	srv.StartWithGracefulShutdown(server, log, "user")
}
