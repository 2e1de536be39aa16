package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/legalease/lexctl/internal/cli/loader"
	"github.com/legalease/lexctl/internal/cli/ui"
	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/session"
)

var uploadChat bool

// uploadCmd is the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "summarize a PDF or DOCX document",
	Long: `Upload a legal document and print its plain-language summary.

Only .pdf and .docx files are accepted. The server keeps the document so you
can list it later and chat about it; the printed session id identifies it.`,
	Example: `  # Summarize a contract
  $ lexctl upload ./lease.pdf

  # Summarize and open the chat right away
  $ lexctl upload ./nda.docx --chat`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().BoolVar(&uploadChat, "chat", false, "open the chat on the document after summarizing")

	uploadCmd.SilenceUsage = true
}

func runUpload(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	if err := rt.requireUser(); err != nil {
		return err
	}

	file, err := loader.LoadDocument(args[0])
	if err != nil {
		ui.PrintError("%v", err)
		fmt.Printf("\nAccepted formats: %s\n", strings.Join(loader.Accepted(), ", "))
		return fmt.Errorf("invalid document")
	}

	uploader := session.NewUploadOrchestrator(rt.gate, rt.client, rt.registry, rt.logger)
	if err := uploader.SelectFile(*file); err != nil {
		ui.PrintError("%s", domain.UserMessage(err, "no file selected"))
		return fmt.Errorf("invalid document")
	}

	ui.PrintInfo("Summarizing %s (%s)...", file.Name, humanize.Bytes(uint64(file.Size)))

	if err := uploader.Submit(cmd.Context()); err != nil {
		if errors.Is(err, session.ErrSuperseded) || errors.Is(err, session.ErrSubmitInProgress) {
			return err
		}
		if domain.IsPrecondition(err) {
			ui.PrintError("%s", domain.UserMessage(err, session.SubmitPreconditionMessage))
			return fmt.Errorf("summarization failed")
		}
		ui.PrintErrorBox("Summarization Failed", uploader.State().ErrorMessage())
		return fmt.Errorf("summarization failed")
	}

	st := uploader.State()
	fmt.Println(ui.RenderSummary(st.Descriptor.Title, st.Summary))
	fmt.Println()
	ui.PrintInfo("Session: %s", st.Descriptor.SessionID)

	if !uploadChat {
		ui.PrintBold("  lexctl chat %s   # Ask questions about this document", st.Descriptor.SessionID)
		return nil
	}

	return runChatTUI(cmd.Context(), rt, *st.Descriptor)
}
