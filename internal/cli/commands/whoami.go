package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/legalease/lexctl/internal/cli/ui"
)

// whoamiCmd is the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "show the signed-in profile",
	Long: `Show the signed-in user, the server in use and how many documents the
server holds for you.`,
	Args: cobra.NoArgs,
	RunE: runWhoami,
}

func init() {
	whoamiCmd.SilenceUsage = true
}

func runWhoami(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	if err := rt.requireUser(); err != nil {
		return err
	}
	user, _ := rt.gate.RequireUser()

	// The count is optional; an unreachable server still shows the profile.
	count := -1
	if err := rt.registry.Refresh(cmd.Context()); err == nil {
		count = len(rt.registry.Documents())
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderProfile(user, rt.cfg.Server, count))
	return nil
}
