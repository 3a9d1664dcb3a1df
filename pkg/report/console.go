package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/k0kubun/pp/v3"

	"github.com/yurifrl/gastos/pkg/installments"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	creditStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
)

// Console writes the human readable run report.
type Console struct {
	w       io.Writer
	printer *pp.PrettyPrinter
}

func NewConsole(w io.Writer, colors bool) *Console {
	printer := pp.New()
	printer.SetColoringEnabled(colors)
	return &Console{w: w, printer: printer}
}

// Installments dumps the final installment state in first-seen order.
func (c *Console) Installments(entries []installments.Entry) {
	fmt.Fprintln(c.w, headingStyle.Render("Installments:"))
	c.printer.Fprintln(c.w, entries)
}

// Subscriptions prints the subscription breakdown and its total.
func (c *Console) Subscriptions(s *Summary) {
	if len(s.Subscriptions) == 0 {
		fmt.Fprintln(c.w, mutedStyle.Render("\nNo subscription expenses found."))
		return
	}
	fmt.Fprintln(c.w, headingStyle.Render("\nSubscription Expenses:"))
	for _, t := range s.Subscriptions {
		fmt.Fprintln(c.w, row(t))
	}
	fmt.Fprintf(c.w, "Total Subscription Expenses: %s\n", FormatBRL(s.SubscriptionTotal))
}

// Top prints the largest categories.
func (c *Console) Top(totals []Total) {
	fmt.Fprintln(c.w, headingStyle.Render(fmt.Sprintf("\nTop %d categories:", len(totals))))
	for _, t := range totals {
		fmt.Fprintln(c.w, row(t))
	}
}

func row(t Total) string {
	// pad before styling, escape codes would count towards the width
	value := fmt.Sprintf("%14s", FormatBRL(t.Value))
	if t.Value.IsNegative() {
		value = creditStyle.Render(value)
	}
	return fmt.Sprintf("  %-24s %s", t.Label, value)
}
