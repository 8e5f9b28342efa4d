// Command balancectl runs the balance optimizer on a YAML catalog from the shell.
//
//	balancectl -budget 12.84 -catalog items.yaml [-max 99999] [-json] [-lang pt]
//
// It exits 2 when the optimizer rejects the input and 1 on usage or catalog errors.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/guttosm/balance-service/internal/currency"
	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/guttosm/balance-service/internal/i18n"
	"github.com/guttosm/balance-service/internal/logger"
	"github.com/guttosm/balance-service/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	exitOK       = 0
	exitUsage    = 1
	exitRejected = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("balancectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		budgetText  = fs.String("budget", "", "card balance, e.g. 12.84 or $12.84")
		catalogPath = fs.String("catalog", "", "YAML catalog file")
		maxBudget   = fs.Int("max", service.DefaultMaxBudgetMinorUnits, "largest accepted balance in minor units")
		asJSON      = fs.Bool("json", false, "print the result as JSON")
		lang        = fs.String("lang", i18n.DefaultLocale, "report language (en, pt, nl)")
		symbol      = fs.String("symbol", "$", "currency symbol")
		verbose     = fs.Bool("v", false, "debug logging on stderr")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger.Init(level, true)

	if *budgetText == "" || *catalogPath == "" {
		fmt.Fprintln(stderr, "balancectl: -budget and -catalog are required")
		fs.Usage()
		return exitUsage
	}

	budget, err := currency.ParseMinorUnits(*budgetText)
	if err != nil {
		fmt.Fprintf(stderr, "balancectl: budget %q: %v\n", *budgetText, err)
		return exitUsage
	}

	items, err := loadCatalog(*catalogPath)
	if err != nil {
		fmt.Fprintf(stderr, "balancectl: %v\n", err)
		return exitUsage
	}

	optimizer := service.NewBalanceOptimizerService(service.WithMaxBudget(*maxBudget))
	input := model.OptimizationInput{BudgetMinorUnits: budget, Items: items}
	locale := i18n.ParseLocale(*lang)

	log.Debug().Int("budget_minor_units", budget).Int("items", len(items)).Msg("optimizing")

	result, ok := optimizer.Optimize(input)
	if !ok {
		fmt.Fprintln(stderr, rejectionMessage(optimizer.Validate(input), optimizer.MaxBudgetMinorUnits(), *symbol, locale))
		return exitRejected
	}

	resp := dto.NewOptimizationResponse(result, *symbol, locale)
	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			fmt.Fprintf(stderr, "balancectl: %v\n", err)
			return exitUsage
		}
		return exitOK
	}

	if err := writeReport(stdout, resp, locale); err != nil {
		fmt.Fprintf(stderr, "balancectl: %v\n", err)
		return exitUsage
	}
	return exitOK
}

func rejectionMessage(rejection service.Rejection, ceiling int, symbol, locale string) string {
	tr := i18n.GetTranslator()
	switch rejection {
	case service.RejectionBudgetTooLarge:
		return tr.Translatef(i18n.ErrKeyBalanceTooLarge, locale, currency.FormatCurrency(ceiling, symbol))
	case service.RejectionNoPricedItems:
		return tr.Translate(i18n.ErrKeyNoPricedItems, locale)
	default:
		return tr.Translate(i18n.ErrKeyInvalidBalance, locale)
	}
}
