package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/iho/pintwise/internal/adapter/http/dto"
)

const (
	descriptionWidth = 32
	dateLayout       = "2006-01-02 15:04"
)

var (
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	subtle    = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().Foreground(highlight).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(subtle)
	okStyle     = lipgloss.NewStyle().Foreground(special).Bold(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(subtle)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func renderPending(w io.Writer, resp *dto.EntryListResponse) {
	if resp.Count == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No pending pints."))
		return
	}

	t := newTable("ID", "Debtor", "Creditor", "Pints", "Description", "Created")
	for _, e := range resp.Entries {
		t.Row(e.ID, e.Debtor, e.Creditor, e.Amount.String(), truncate(e.Description, descriptionWidth), formatTime(&e.DateCreated))
	}
	fmt.Fprintln(w, t.String())
}

func renderHistory(w io.Writer, resp *dto.EntryListResponse) {
	if resp.Count == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No entries."))
		return
	}

	t := newTable("ID", "Debtor", "Creditor", "Pints", "Description", "Status", "Created", "Paid")
	for _, e := range resp.Entries {
		t.Row(e.ID, e.Debtor, e.Creditor, e.Amount.String(), truncate(e.Description, descriptionWidth),
			e.Status, formatTime(&e.DateCreated), formatTime(e.DatePaid))
	}
	fmt.Fprintln(w, t.String())
}

func renderBalances(w io.Writer, resp *dto.BalancesResponse) {
	if len(resp.Balances) == 0 {
		fmt.Fprintln(w, okStyle.Render("All square. Nobody owes anybody."))
		return
	}

	t := newTable("Debtor", "Owes", "Pints")
	for _, b := range resp.Balances {
		t.Row(b.Debtor, b.Creditor, b.Amount.StringFixed(2))
	}
	fmt.Fprintln(w, t.String())
}

func renderStats(w io.Writer, resp *dto.StatsResponse) {
	t := newTable("", "Pints", "Entries")
	t.Row("Total", resp.Total.String(), fmt.Sprint(resp.Entries))
	t.Row("Pending", resp.Pending.String(), fmt.Sprint(resp.PendingEntries))
	t.Row("Paid", resp.Paid.String(), fmt.Sprint(resp.PaidEntries))
	fmt.Fprintln(w, t.String())
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
