package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"sigs.k8s.io/yaml"

	"github.com/legalease/lexctl/internal/cli/types"
	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
	"github.com/legalease/lexctl/internal/session"
)

var (
	// Tree node styles
	titleNodeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)  // Cyan
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))            // Gray
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true) // Pink

	// Summary line style
	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1)
)

// Output formats accepted by -o
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// RenderDocumentTree renders documents as a tree in the order given.
// now anchors the relative upload times.
func RenderDocumentTree(docs []entity.DocumentRecord, now time.Time) string {
	if len(docs) == 0 {
		return keyStyle.Render("No documents found. Upload one with 'lexctl upload <file>'.")
	}

	var b strings.Builder
	for i, doc := range docs {
		b.WriteString(buildDocumentNode(doc, now).String())
		if i < len(docs)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// buildDocumentNode creates a tree node for one document
func buildDocumentNode(doc entity.DocumentRecord, now time.Time) *tree.Tree {
	node := tree.New().Root(titleNodeStyle.Render(doc.Title))

	node.Child(formatKeyValue("Session:", doc.SessionID))
	node.Child(formatKeyValue("Uploaded:", formatUploaded(doc.Time, now)))

	chat := keyStyle.Render("not started")
	if doc.HasChat {
		chat = color.GreenString("available")
	}
	node.Child(formatKeyValue("Chat:", chat))

	return node
}

// formatUploaded shows the display timestamp followed by a relative time
func formatUploaded(raw string, now time.Time) string {
	t, err := domain.ParseSubmissionTime(raw)
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%s %s",
		t.Format(domain.DisplayTimeLayout),
		keyStyle.Render("("+humanize.RelTime(t, now, "ago", "from now")+")"),
	)
}

// formatKeyValue formats a key-value pair
func formatKeyValue(key, value string) string {
	return fmt.Sprintf("%s %s",
		keyStyle.Render(key),
		value,
	)
}

// RenderDocumentSummary renders the count line under a listing
func RenderDocumentSummary(shown, total int) string {
	label := "documents"
	if total == 1 {
		label = "document"
	}

	summary := fmt.Sprintf("Total: %s %s",
		highlightStyle.Render(fmt.Sprintf("%d", total)),
		keyStyle.Render(label),
	)
	if shown < total {
		summary += keyStyle.Render(fmt.Sprintf(" (showing the %d most recent)", shown))
	}
	return summaryStyle.Render(summary)
}

// RenderRegistryFailure renders the error banner for a failed listing. When a
// previous listing exists it is rendered below the banner, labelled with its
// fetch time so it cannot be mistaken for current data.
func RenderRegistryFailure(snap session.Snapshot, now time.Time) string {
	msg := domain.UserMessage(snap.Err, "Failed to load documents. Please try again.")
	banner := Styles.ErrorBox.Render(fmt.Sprintf("%s\n\n%s", errorColor.Sprint("Could not load documents"), msg))

	if snap.Stale == nil {
		return banner
	}

	label := warningColor.Sprintf("Last successful listing from %s (may be out of date):",
		humanize.RelTime(snap.Stale.FetchedAt, now, "ago", "from now"))
	return banner + "\n\n" + label + "\n" + RenderDocumentTree(snap.Stale.Documents, now)
}

// toItems maps documents to their wire shape for structured output
func toItems(docs []entity.DocumentRecord) []types.DocumentItem {
	items := make([]types.DocumentItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, types.DocumentItem{
			SessionID: d.SessionID,
			Title:     d.Title,
			Time:      d.Time,
			HasChat:   d.HasChat,
		})
	}
	return items
}

// RenderDocumentsJSON renders documents as indented JSON
func RenderDocumentsJSON(docs []entity.DocumentRecord) (string, error) {
	data, err := sonic.ConfigStd.MarshalIndent(toItems(docs), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal documents: %w", err)
	}
	return string(data), nil
}

// RenderDocumentsYAML renders documents as YAML
func RenderDocumentsYAML(docs []entity.DocumentRecord) (string, error) {
	data, err := yaml.Marshal(toItems(docs))
	if err != nil {
		return "", fmt.Errorf("failed to marshal documents: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// RenderDocuments renders documents in the requested output format
func RenderDocuments(docs []entity.DocumentRecord, format string, now time.Time) (string, error) {
	switch format {
	case "", FormatTable:
		return RenderDocumentTree(docs, now), nil
	case FormatJSON:
		return RenderDocumentsJSON(docs)
	case FormatYAML:
		return RenderDocumentsYAML(docs)
	default:
		return "", fmt.Errorf("unknown output format '%s', must be one of table, json, yaml", format)
	}
}
