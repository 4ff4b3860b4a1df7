package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/winauto/bridge/internal/ansible"
	"github.com/winauto/bridge/internal/api"
	"github.com/winauto/bridge/internal/deps"
	"github.com/winauto/bridge/pkg/config"
	"github.com/winauto/bridge/pkg/logger"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting ansible bridge",
		zap.String("playbook", cfg.Ansible.PlaybookPath),
		zap.Int("port", cfg.Server.Port))

	runner := ansible.NewProcessRunner(cfg.Ansible.TerminationGrace, zapLogger)
	executor := ansible.NewExecutor(cfg.Ansible, runner, zapLogger)

	checker := deps.NewChecker(cfg.Health, cfg.Ansible, zapLogger)
	if err := checker.Start(); err != nil {
		zapLogger.Fatal("Failed to start dependency prober", zap.Error(err))
	}
	defer checker.Stop()

	gin.SetMode(gin.ReleaseMode)
	server := api.NewServer(executor, checker, zapLogger)

	srv := &http.Server{
		Addr:           net.JoinHostPort(cfg.Server.IP, strconv.Itoa(cfg.Server.Port)),
		Handler:        server.Router(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		zapLogger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server shutdown failed", zap.Error(err))
	}
}
