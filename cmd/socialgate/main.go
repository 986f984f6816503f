// socialgate es el broker OAuth multi-provider (Facebook, Instagram, TikTok).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/socialgate/internal/config"
	httpserver "github.com/dropDatabas3/socialgate/internal/http"
	"github.com/dropDatabas3/socialgate/internal/observability/logger"
)

var version = "dev"

func main() {
	// .env es opcional; en contenedores la config llega por entorno.
	_ = godotenv.Load()

	var (
		configPath string
		logLevel   string
	)

	root := &cobra.Command{
		Use:           "socialgate",
		Short:         "Broker OAuth para cuentas sociales (Facebook, Instagram, TikTok)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("SOCIALGATE_CONFIG"), "Ruta al YAML de configuración (env SOCIALGATE_CONFIG)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Nivel de log: debug|info|warn|error")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Levantar el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, logLevel)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Mostrar la versión",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("socialgate", version)
		},
	}

	root.AddCommand(serveCmd, versionCmd)

	// Sin subcomando, servir.
	root.RunE = serveCmd.RunE

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runServe(configPath, logLevel string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       logLevel,
		ServiceName: "socialgate",
		Version:     version,
	})
	defer func() { _ = logger.Sync() }()

	log := logger.L()

	handler, err := httpserver.BuildHandler(cfg)
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening",
			logger.String("addr", cfg.Server.Addr),
			logger.String("cache", cfg.Cache.Kind),
		)
		return httpserver.Start(ctx, cfg.Server.Addr, handler)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	log.Info("server stopped")
	return nil
}
