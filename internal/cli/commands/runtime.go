package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"github.com/legalease/lexctl/internal/cli/client"
	"github.com/legalease/lexctl/internal/cli/config"
	"github.com/legalease/lexctl/internal/cli/ui"
	devconfig "github.com/legalease/lexctl/internal/config"
	"github.com/legalease/lexctl/internal/session"
	"github.com/legalease/lexctl/pkg/logger"
)

// logFileName sits next to config.yaml; the terminal stays free for the TUI
const logFileName = "lexctl.log"

// runtime is what every authenticated command works with
type runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	client   *client.APIClient
	gate     *session.IdentityGate
	registry *session.DocumentRegistry
}

// newRuntime loads the config, sets up logging and resolves the identity
func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return nil, fmt.Errorf("config load failed")
	}

	lg, err := setupLogger(cfg)
	if err != nil {
		ui.PrintError("failed to set up logging: %v", err)
		return nil, fmt.Errorf("logger setup failed")
	}

	apiClient, err := client.NewAPIClient(cfg.Server, cfg.Timeout)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return nil, fmt.Errorf("client creation failed")
	}

	gate := session.NewIdentityGate(config.FileIdentityProvider{}, lg)
	if err := gate.Resolve(ctx); err != nil {
		ui.PrintError("failed to resolve identity: %v", err)
		return nil, fmt.Errorf("identity resolution failed")
	}

	return &runtime{
		cfg:      cfg,
		logger:   lg,
		client:   apiClient,
		gate:     gate,
		registry: session.NewDocumentRegistry(gate, apiClient, lg),
	}, nil
}

// setupLogger writes to ~/.lexctl/lexctl.log; --debug lowers the level
func setupLogger(cfg *config.Config) (*slog.Logger, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if level == "" {
		level = "info"
	}
	if debug {
		level = "debug"
	}

	lg, err := logger.Setup(devconfig.LogConfig{
		Level:    level,
		Format:   "text",
		Output:   "file",
		FilePath: filepath.Join(dir, logFileName),
	})
	if err != nil {
		return nil, err
	}

	// hertz client warnings go to the same file
	hlog.SetLogger(logger.NewHertzSlogAdapter(lg))
	return lg, nil
}

// requireUser prints the sign-in hint when nobody is signed in
func (r *runtime) requireUser() error {
	if _, err := r.gate.RequireUser(); err != nil {
		ui.PrintError("not signed in, please login first")
		fmt.Println("\nRun 'lexctl login' to sign in.")
		return fmt.Errorf("authentication required")
	}
	return nil
}
