package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/network/netpoll"
	"github.com/spf13/cobra"

	"github.com/adityachauhan/aira-apiserver/internal/config"
	"github.com/adityachauhan/aira-apiserver/internal/handler"
	"github.com/adityachauhan/aira-apiserver/internal/infrastructure/gateway"
	"github.com/adityachauhan/aira-apiserver/internal/infrastructure/search"
	"github.com/adityachauhan/aira-apiserver/internal/router"
	"github.com/adityachauhan/aira-apiserver/internal/telemetry"
	"github.com/adityachauhan/aira-apiserver/internal/usecase"
	"github.com/adityachauhan/aira-apiserver/pkg/logger"
)

var (
	cfgFile string
	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "aira-apiserver",
	Short: "Aira chat relay API server",
	Long: `Aira API Server fronts the AI gateway for the Aira chat client.
It relays streaming chat completions, augments prompts with live web
search results when a query needs current information, and serves a
standalone web-search endpoint.`,
	Version: version,
	Run:     runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file (optional, env vars suffice)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func runServer(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	slog.Info("starting aira-apiserver",
		"version", version,
		"config", cfgFile,
	)

	// Route Hertz framework logs through slog
	hlog.SetLogger(logger.NewHertzSlogAdapter(slog.Default()))

	tracer, meter, telemetryShutdown, err := telemetry.Init(context.Background(), cfg.Observability)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer telemetryShutdown()

	gatewayClient, err := gateway.NewClient(cfg.Gateway, slog.Default())
	if err != nil {
		slog.Error("failed to create gateway client", "error", err)
		os.Exit(1)
	}
	if cfg.Gateway.APIKey == "" {
		slog.Warn("gateway API key is not configured, chat requests will fail")
	}

	searchClient := search.NewClient(cfg.Search, slog.Default())
	if !cfg.Search.Enabled() {
		slog.Info("search API key is not configured, augmentation disabled")
	}

	chatUsecase := usecase.NewChatUsecase(gatewayClient, searchClient, slog.Default(), tracer, meter)
	chatHandler := handler.NewChatHandler(chatUsecase, slog.Default())

	searchUsecase := usecase.NewSearchUsecase(searchClient, cfg.Search.RecencyFilter, slog.Default(), tracer)
	searchHandler := handler.NewSearchHandler(searchUsecase, slog.Default())

	healthHandler := handler.NewHealthHandler(cfg)

	h := server.Default(
		server.WithHostPorts(cfg.GetServerAddr()),
		server.WithReadTimeout(cfg.Server.ReadTimeout),
		server.WithWriteTimeout(cfg.Server.WriteTimeout),
		server.WithMaxRequestBodySize(cfg.Server.MaxRequestBodySize*1024*1024),
		server.WithTransport(netpoll.NewTransporter),
		// Stop forwarding upstream bytes once the caller goes away.
		server.WithSenseClientDisconnection(true),
	)

	router.Setup(h, chatHandler, searchHandler, healthHandler)

	slog.Info("server started",
		"address", cfg.GetServerAddr(),
		"mode", cfg.Server.Mode,
	)

	go func() {
		if err := h.Run(); err != nil {
			slog.Error("server run failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
