package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/legalease/lexctl/internal/cli/ui"
	"github.com/legalease/lexctl/internal/session"
)

var (
	documentsRecent int
	documentsOutput string
)

// documentsCmd is the documents command
var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs", "ls"},
	Short:   "list your processed documents",
	Long: `List the documents you uploaded, newest first, with their session id,
upload time and whether a chat has been started on them.

The list is fetched from the server every time; nothing is cached between
invocations.`,
	Example: `  # List every document
  $ lexctl documents

  # Only the five most recent (dashboard view)
  $ lexctl documents --recent

  # The ten most recent as JSON
  $ lexctl documents --recent 10 -o json`,
	Args: cobra.NoArgs,
	RunE: runDocuments,
}

func init() {
	documentsCmd.Flags().IntVar(&documentsRecent, "recent", 0, "show only the N most recent documents")
	documentsCmd.Flags().Lookup("recent").NoOptDefVal = strconv.Itoa(session.RecentLimit)
	documentsCmd.Flags().StringVarP(&documentsOutput, "output", "o", ui.FormatTable, "output format: table, json or yaml")

	documentsCmd.SilenceUsage = true
}

func runDocuments(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	if err := rt.requireUser(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if err := rt.registry.Refresh(cmd.Context()); err != nil {
		fmt.Fprintln(out, ui.RenderRegistryFailure(rt.registry.Snapshot(), time.Now()))
		return fmt.Errorf("failed to list documents")
	}

	all := rt.registry.Documents()
	docs := all
	if documentsRecent > 0 {
		docs = rt.registry.Recent(documentsRecent)
	}

	rendered, err := ui.RenderDocuments(docs, documentsOutput, time.Now())
	if err != nil {
		ui.PrintError("%v", err)
		return fmt.Errorf("invalid output format")
	}
	fmt.Fprintln(out, rendered)

	if documentsOutput == ui.FormatTable || documentsOutput == "" {
		fmt.Fprintln(out, ui.RenderDocumentSummary(len(docs), len(all)))
	}
	return nil
}
