package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/legalease/lexctl/internal/domain/entity"
)

// summaryWidth is the wrap width of summary text inside its box
const summaryWidth = 76

// RenderSummary renders a document summary in a box, wrapped for the terminal
func RenderSummary(title, summary string) string {
	body := strings.TrimSpace(summary)
	if body == "" {
		body = keyStyle.Render("(the service returned an empty summary)")
	} else {
		body = wordwrap.String(body, summaryWidth)
	}

	heading := titleNodeStyle.Render("Summary of " + title)
	return Styles.SummaryBox.Render(heading + "\n\n" + body)
}

// RenderProfile renders the signed-in user's profile
func RenderProfile(user *entity.UserIdentity, server string, documents int) string {
	lines := []string{
		formatKeyValue("Name:    ", Styles.Bold.Render(user.DisplayName())),
		formatKeyValue("Email:   ", user.Email),
		formatKeyValue("User ID: ", user.ID),
		formatKeyValue("Server:  ", server),
	}
	if documents >= 0 {
		lines = append(lines, formatKeyValue("Docs:    ", fmt.Sprintf("%d", documents)))
	}
	return strings.Join(lines, "\n")
}
