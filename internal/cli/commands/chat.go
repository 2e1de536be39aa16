package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/legalease/lexctl/internal/cli/tui"
	"github.com/legalease/lexctl/internal/cli/ui"
	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
	"github.com/legalease/lexctl/internal/session"
)

var (
	chatTitle   string
	chatMessage string
)

// chatCmd is the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [session-id]",
	Short: "chat about one of your documents",
	Long: `Ask questions about a previously summarized document.

Without a session id you pick the document from your list. The transcript
is loaded from the server when the chat opens and every answer is stored
there, so a chat can be resumed later from any machine.`,
	Example: `  # Pick a document interactively
  $ lexctl chat

  # Open a known session
  $ lexctl chat 3f2a9c1e-...

  # Ask a single question without the full-screen UI
  $ lexctl chat 3f2a9c1e-... -m "When does the lease end?"

  # Keyboard controls:
  • Enter sends the message
  • Esc or Ctrl+C leaves the chat`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatTitle, "title", "", "document title to show when the session is not in your list")
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "send one message, print the reply and exit")

	chatCmd.SilenceUsage = true
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	if err := rt.requireUser(); err != nil {
		return err
	}

	// The listing is best-effort when an id is given; it only supplies the title.
	refreshErr := rt.registry.Refresh(ctx)

	var d entity.SessionDescriptor
	if len(args) > 0 {
		d = resolveDescriptor(rt.registry, args[0], chatTitle)
	} else {
		if refreshErr != nil {
			ui.PrintErrorBox("Could not load documents", domain.UserMessage(refreshErr, "Failed to load documents. Please try again."))
			return fmt.Errorf("failed to list documents")
		}
		d, err = pickDocument(rt.registry.Documents())
		if err != nil {
			return err
		}
	}

	if chatMessage != "" {
		return runChatOnce(ctx, rt, d, chatMessage)
	}
	return runChatTUI(ctx, rt, d)
}

// runChatTUI opens the full-screen chat on d
func runChatTUI(ctx context.Context, rt *runtime, d entity.SessionDescriptor) error {
	chat := session.NewChatSession(rt.client, rt.logger)
	chat.Follow(rt.gate)

	program := tui.NewChatProgram(ctx, chat, d)
	if err := program.Run(); err != nil {
		return fmt.Errorf("failed to run chat TUI: %w", err)
	}
	return nil
}

// runChatOnce sends one message and prints the reply
func runChatOnce(ctx context.Context, rt *runtime, d entity.SessionDescriptor, message string) error {
	chat := session.NewChatSession(rt.client, rt.logger)
	defer chat.Close()

	if err := chat.Open(ctx, d); err != nil {
		ui.PrintError("%s", domain.UserMessage(err, "Failed to load chat history."))
		return fmt.Errorf("failed to open chat")
	}

	ex, ok := chat.Post(message)
	if !ok {
		ui.PrintError("message is empty")
		return fmt.Errorf("nothing to send")
	}

	ui.PrintChatWelcomeBanner(d.Title)
	fmt.Printf("%s %s\n\n", ui.Styles.Bold.Render("You:"), ex.Text())

	reply, err := ex.Wait(ctx)
	fmt.Printf("%s %s\n", ui.Styles.Bold.Render("Assistant:"), reply.Content)
	if err != nil {
		return fmt.Errorf("message not answered: %s", domain.UserMessage(err, "Failed to send message. Please try again."))
	}
	return nil
}

// resolveDescriptor builds the descriptor for an explicit session id. The
// title comes from the flag, then the listing, then the id itself.
func resolveDescriptor(registry *session.DocumentRegistry, sessionID, title string) entity.SessionDescriptor {
	d, found := registry.Descriptor(sessionID)
	if !found {
		d = entity.SessionDescriptor{SessionID: sessionID, Title: sessionID}
	}
	if title != "" {
		d.Title = title
	}
	return d
}

// pickDocument asks which document to chat about
func pickDocument(docs []entity.DocumentRecord) (entity.SessionDescriptor, error) {
	if len(docs) == 0 {
		ui.PrintWarning("You have no documents yet.")
		fmt.Println("\nRun 'lexctl upload <file>' to summarize one.")
		return entity.SessionDescriptor{}, fmt.Errorf("no documents")
	}

	options := documentOptions(docs)
	var choice int
	prompt := &survey.Select{
		Message:  "Choose a document:",
		Options:  options,
		PageSize: 10,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		if errors.Is(err, context.Canceled) {
			return entity.SessionDescriptor{}, err
		}
		ui.PrintError("failed to read choice: %v", err)
		return entity.SessionDescriptor{}, fmt.Errorf("input failed")
	}
	return docs[choice].Descriptor(), nil
}

// documentOptions labels each document for the picker
func documentOptions(docs []entity.DocumentRecord) []string {
	options := make([]string, len(docs))
	for i, d := range docs {
		var sb strings.Builder
		sb.WriteString(d.Title)
		sb.WriteString("  (")
		sb.WriteString(domain.DisplayTime(d.Time))
		if d.HasChat {
			sb.WriteString(", chatted")
		}
		sb.WriteString(")")
		options[i] = sb.String()
	}
	return options
}
