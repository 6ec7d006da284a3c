package format

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/copilotmd/pkg/markdown"
)

// Card is one panel of the answer report.
type Card struct {
	Title    string
	Keys     []string // section titles looked up in order
	Fallback string
}

// ReportCards are the panels of the analysis view, in display order.
var ReportCards = []Card{
	{Title: "Summary", Keys: []string{"Summary"}, Fallback: "No summary"},
	{Title: "Key Clinical Details", Keys: []string{"Key Clinical Details"}, Fallback: "Not provided."},
	{
		Title:    "Possible Clinical Considerations",
		Keys:     []string{"Possible Clinical Considerations (for clinician review only)", "Possible Clinical Considerations"},
		Fallback: "Not provided.",
	},
	{Title: "Questions to Clarify", Keys: []string{"Questions to Clarify"}, Fallback: "None listed."},
	{Title: "Safety / Red Flags", Keys: []string{"Safety / Red Flags"}, Fallback: "None listed."},
}

// Disclaimer closes every report.
const Disclaimer = "Prototype AI - NOT medical advice."

// CardBody returns the section body for c, or its fallback.
func CardBody(secs markdown.Sections, c Card) string {
	for _, k := range c.Keys {
		if body, ok := secs.Get(k); ok && body != "" {
			return body
		}
	}
	return c.Fallback
}

// WriteReport renders the standard section cards of an answer, each body
// rendered through the markdown subset, followed by the disclaimer.
func WriteReport(w io.Writer, secs markdown.Sections, width int) error {
	if width <= 0 {
		width = 80
	}
	th := DefaultTheme()
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1).
		Width(width - 2)
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	inner := width - 6 // border and padding on both sides

	views := make([]string, 0, len(ReportCards)+1)
	for _, c := range ReportCards {
		body := RenderANSI(markdown.Parse(CardBody(secs, c)), inner, th)
		views = append(views, card.Render(title.Render(c.Title)+"\n"+strings.TrimRight(body, "\n")))
	}
	views = append(views, lipgloss.NewStyle().Faint(true).Render(Disclaimer))
	_, err := io.WriteString(w, strings.Join(views, "\n")+"\n")
	return err
}
