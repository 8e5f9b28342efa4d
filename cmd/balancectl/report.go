package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/guttosm/balance-service/internal/i18n"
)

// writeReport prints the label, summary, allocation table and totals in
// locale. Mandatory allocations are marked with "*".
func writeReport(w io.Writer, resp dto.OptimizationResponse, locale string) error {
	tr := i18n.GetTranslator()
	label := func(key string) string { return tr.Translate(key, locale) }

	fmt.Fprintf(w, "%s\n%s\n", resp.Match.Label, resp.Match.Summary)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if len(resp.Allocations) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			label(i18n.ReportKeyItem), label(i18n.ReportKeyQuantity), label(i18n.ReportKeyUnit), label(i18n.ReportKeyTotal))
		for _, a := range resp.Allocations {
			name := a.Name
			if a.Mandatory {
				name += " *"
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t\n", name, a.Quantity, a.UnitPrice, a.Total)
		}
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "%s\t%s\t\n", label(i18n.ReportKeyBudget), resp.Budget)
	fmt.Fprintf(tw, "%s\t%s\t\n", label(i18n.ReportKeySpent), resp.TotalSpent)
	fmt.Fprintf(tw, "%s\t%s\t\n", label(i18n.ReportKeyRemaining), resp.Remaining)
	return tw.Flush()
}
