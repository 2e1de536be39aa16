package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/legalease/lexctl/internal/cli/client"
	"github.com/legalease/lexctl/internal/cli/config"
	"github.com/legalease/lexctl/internal/cli/ui"
	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
	"github.com/legalease/lexctl/internal/session"
)

var (
	loginEmail  string
	loginUserID string
)

// loginCmd is the login command
var loginCmd = &cobra.Command{
	Use:   "login [server]",
	Short: "sign in and remember the summarization server",
	Long: `Sign in with your email address and save the identity locally.

The identity is stored in ~/.lexctl/config.yaml and used by every other
command until you run 'lexctl logout'. Your user id is derived from the email
address unless --user-id is given, so signing in again with the same email
shows the same documents.

If server is not provided, the saved server (or http://localhost:5000) is used.`,
	Example: `  # Sign in against the default server
  $ lexctl login -e jane@example.com

  # Sign in against a remote server
  $ lexctl login https://legal.example.com -e jane@example.com

  # Reuse an id issued elsewhere
  $ lexctl login -e jane@example.com --user-id 5f0c...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Email address to sign in with")
	loginCmd.Flags().StringVar(&loginUserID, "user-id", "", "Use this user id instead of deriving one from the email")

	// Silence usage to avoid showing help on every error
	loginCmd.SilenceUsage = true
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	server := cfg.Server
	if len(args) > 0 {
		server = args[0]
	}

	apiClient, err := client.NewAPIClient(server, cfg.Timeout)
	if err != nil {
		ui.PrintError("invalid server: %v", err)
		return fmt.Errorf("client creation failed")
	}

	// 1. Prompt for the email if not provided
	if loginEmail == "" {
		prompt := &survey.Input{Message: "Email:"}
		if err := survey.AskOne(prompt, &loginEmail, survey.WithValidator(survey.Required), survey.WithValidator(validateEmail)); err != nil {
			ui.PrintError("failed to read email: %v", err)
			return fmt.Errorf("input failed")
		}
	} else if err := validateEmail(loginEmail); err != nil {
		ui.PrintError("%v", err)
		return fmt.Errorf("invalid email")
	}

	email := strings.TrimSpace(loginEmail)
	userID := strings.TrimSpace(loginUserID)
	if userID == "" {
		userID = config.DeriveUserID(email)
	}

	// 2. Save the identity
	cfg.Server = apiClient.Server()
	cfg.Email = email
	cfg.UserID = userID
	if err := cfg.Save(); err != nil {
		ui.PrintError("failed to save config: %v", err)
		return fmt.Errorf("config save failed")
	}

	lg, err := setupLogger(cfg)
	if err != nil {
		ui.PrintError("failed to set up logging: %v", err)
		return fmt.Errorf("logger setup failed")
	}

	// 3. Check the server answers for this user
	user := &entity.UserIdentity{ID: userID, Email: email}
	gate := session.NewIdentityGate(config.FileIdentityProvider{}, lg)
	gate.SignIn(user)
	registry := session.NewDocumentRegistry(gate, apiClient, lg)

	ui.PrintInfo("Connecting to %s...", cfg.Server)

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	docsLine := ""
	if err := registry.Refresh(ctx); err != nil {
		lg.Warn("login check failed", "error", err)
		ui.PrintWarningBox("Server Not Reachable",
			"You are signed in, but the server did not answer:\n"+domain.UserMessage(err, client.FallbackListDocuments))
	} else {
		docsLine = fmt.Sprintf("\nDocuments:      %d", len(registry.Documents()))
	}

	configPath, _ := config.GetConfigPath()
	successContent := fmt.Sprintf(`Email:          %s
User ID:        %s
Server:         %s%s
Config saved:   %s`,
		email,
		userID,
		cfg.Server,
		docsLine,
		configPath,
	)

	ui.PrintSuccessBox("✓ Signed In", successContent)

	fmt.Println()
	ui.PrintInfo("You can now use the following commands:")
	ui.PrintBold("  lexctl upload <file>     # Summarize a PDF or DOCX")
	ui.PrintBold("  lexctl documents         # List your documents")
	ui.PrintBold("  lexctl chat              # Chat about a document")

	return nil
}

// validateEmail is a survey validator accepting anything shaped like a@b
func validateEmail(val interface{}) error {
	s, ok := val.(string)
	if !ok {
		return errors.New("email must be text")
	}
	s = strings.TrimSpace(s)
	local, domainPart, found := strings.Cut(s, "@")
	if !found || local == "" || domainPart == "" || strings.ContainsAny(s, " \t") {
		return fmt.Errorf("'%s' is not a valid email address", s)
	}
	return nil
}
