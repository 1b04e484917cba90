package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Itish41/asset-audit/engine"
	"github.com/Itish41/asset-audit/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2a3850"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	noteStyle   = lipgloss.NewStyle().Faint(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderDiscrepancies prints one row per discrepancy with the best-tier
// assignee suggestions for its location.
func renderDiscrepancies(w io.Writer, found []engine.Discrepancy, candidates func(string) engine.Tiers) error {
	if len(found) == 0 {
		_, err := fmt.Fprintln(w, noteStyle.Render("no unactioned discrepancies"))
		return err
	}
	t := newTable("ASSET", "TYPE", "PRIORITY", "LOCATION", "ISSUE", "SUGGESTED")
	for _, d := range found {
		var names []string
		for _, c := range candidates(d.Location).Best() {
			names = append(names, c.Name)
		}
		t.Row(d.AssetTag, string(d.Type), string(d.Priority), d.Location, d.Issue, strings.Join(names, ", "))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func renderGenerate(w io.Writer, result *models.GenerateResult) {
	if result.Message != "" {
		fmt.Fprintln(w, noteStyle.Render(result.Message))
		return
	}
	t := newTable("ASSET", "ACTION", "ASSIGNED TO", "REASON", "ERROR")
	for _, o := range result.Outcomes {
		assignee := o.AssignedTo
		if assignee == "" && o.Error == "" {
			assignee = "unassigned"
		}
		t.Row(o.AuditAssetID, o.ActionID, assignee, o.Reason, failStyle.Render(o.Error))
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "created %d, failed %d\n", result.Created, result.Failed)
}

func renderReminders(w io.Writer, result *models.ReminderResult) {
	if len(result.Outcomes) == 0 {
		fmt.Fprintln(w, noteStyle.Render("no reminder-eligible actions"))
		return
	}
	t := newTable("ASSIGNEE", "ACTIONS", "OUTCOME", "ERROR")
	for _, o := range result.Outcomes {
		outcome := string(o.Outcome)
		if o.Outcome == models.ReminderFailed {
			outcome = failStyle.Render(outcome)
		}
		t.Row(o.AssigneeID, strings.Join(o.ActionIDs, ", "), outcome, o.Error)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "sent %d, failed %d\n", result.TotalSent, result.TotalFailed)
}
