package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/legalease/lexctl/internal/cli/ui"
)

// logoutCmd is the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "forget the signed-in identity",
	Long: `Forget the signed-in identity. The server address is kept so the next
'lexctl login' does not need it again.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

func init() {
	logoutCmd.SilenceUsage = true
}

func runLogout(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}

	user, err := rt.gate.RequireUser()
	if err != nil {
		ui.PrintInfo("Nobody is signed in.")
		return nil
	}

	rt.cfg.ClearIdentity()
	if err := rt.cfg.Save(); err != nil {
		ui.PrintError("failed to save config: %v", err)
		return fmt.Errorf("config save failed")
	}
	rt.gate.SignOut()

	rt.logger.Info("signed out", "user_id", user.ID)
	ui.PrintSuccess("Signed out %s", user.DisplayName())
	return nil
}
