package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/spf13/cobra"

	"github.com/legalease/lexctl/internal/config"
	"github.com/legalease/lexctl/internal/devserver"
	"github.com/legalease/lexctl/pkg/logger"
)

var (
	cfgFile string
	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "lexdev",
	Short: "Development backend for lexctl",
	Long: `lexdev serves the document summarization REST API locally.
Summaries are the leading sentences of the document and answers are the
best matching sentence, so the lexctl client can be exercised end to end
without the hosted model.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file (default: configs/config.yaml if present)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	lg, err := logger.Setup(cfg.Log)
	if err != nil {
		return err
	}

	lg.Info("lexdev starting", "version", version, "config", cfgFile)

	// Route hertz's own logs through slog
	hertzLogger := logger.NewHertzSlogAdapter(lg)
	hlog.SetLogger(hertzLogger)
	if cfg.Server.Mode == "release" {
		hlog.SetLevel(hlog.LevelWarn)
	} else {
		hlog.SetLevel(hlog.LevelDebug)
	}

	srv, err := devserver.New(cfg, lg)
	if err != nil {
		return err
	}

	go func() {
		if err := srv.Run(); err != nil {
			lg.Error("server run failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Error("server shutdown failed", "error", err)
		return err
	}

	lg.Info("server stopped gracefully")
	return nil
}
