package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coffeeCatalog = `
items:
  - id: latte
    name: Latte
    price: 4.28
  - id: tip
    name: Tip
    price: "$1.00"
    mandatory_quantity: 1
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Report(t *testing.T) {
	catalog := writeCatalog(t, coffeeCatalog)

	code, out, errOut := runCLI("-budget", "10.00", "-catalog", catalog)

	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, "Best Possible")
	assert.Contains(t, out, "$0.44 remaining")
	assert.Contains(t, out, "Tip *")
	assert.Contains(t, out, "$8.56")
	assert.Contains(t, out, "$9.56")
}

func TestRun_JSON(t *testing.T) {
	catalog := writeCatalog(t, coffeeCatalog)

	code, out, errOut := runCLI("-budget", "$13.84", "-catalog", catalog, "-json")
	require.Equal(t, exitOK, code, errOut)

	var resp dto.OptimizationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, model.MatchPerfect, resp.Match.Kind)
	assert.Equal(t, 1384, resp.TotalSpentMinorUnits)
	require.Len(t, resp.Allocations, 2)
}

func TestRun_Translated(t *testing.T) {
	catalog := writeCatalog(t, coffeeCatalog)

	code, out, _ := runCLI("-budget", "0.50", "-catalog", catalog, "-lang", "pt-BR", "-symbol", "R$")

	require.Equal(t, exitOK, code)
	assert.NotContains(t, out, "No Solution")
	assert.Contains(t, out, "R$0.50")
}

func TestRun_ReportLabels(t *testing.T) {
	catalog := writeCatalog(t, coffeeCatalog)

	tests := []struct {
		lang     string
		want     []string
		dontWant []string
	}{
		{lang: "en", want: []string{"ITEM", "QTY", "UNIT", "TOTAL", "Budget", "Spent", "Remaining"}},
		{lang: "pt", want: []string{"ITEM", "QTD", "UNITÁRIO", "TOTAL", "Saldo", "Gasto", "Restante"}, dontWant: []string{"QTY", "Budget", "Spent"}},
		{lang: "nl", want: []string{"ARTIKEL", "AANTAL", "STUKPRIJS", "TOTAAL", "Saldo", "Besteed", "Resterend"}, dontWant: []string{"ITEM", "QTY", "Remaining"}},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			code, out, errOut := runCLI("-budget", "10.00", "-catalog", catalog, "-lang", tt.lang)

			require.Equal(t, exitOK, code, errOut)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.dontWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestRun_Rejections(t *testing.T) {
	catalog := writeCatalog(t, coffeeCatalog)
	unpriced := writeCatalog(t, "items:\n  - name: Free\n    price: \"0\"\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "zero budget", args: []string{"-budget", "0", "-catalog", catalog}, wantErr: "Please enter a valid card balance."},
		{name: "negative budget", args: []string{"-budget", "-5", "-catalog", catalog}, wantErr: "Please enter a valid card balance."},
		{name: "above ceiling", args: []string{"-budget", "20.00", "-catalog", catalog, "-max", "1000"}, wantErr: "maximum of $10.00"},
		{name: "no priced items", args: []string{"-budget", "5", "-catalog", unpriced}, wantErr: "Add at least one item with a price."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(tt.args...)
			assert.Equal(t, exitRejected, code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, tt.wantErr)
		})
	}
}

func TestRun_UsageErrors(t *testing.T) {
	catalog := writeCatalog(t, coffeeCatalog)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing flags", args: nil, wantErr: "-budget and -catalog are required"},
		{name: "unknown flag", args: []string{"-nope"}, wantErr: "flag provided but not defined"},
		{name: "bad budget", args: []string{"-budget", "abc", "-catalog", catalog}, wantErr: `budget "abc"`},
		{name: "missing file", args: []string{"-budget", "5", "-catalog", filepath.Join(t.TempDir(), "none.yaml")}, wantErr: "open catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.Contains(t, errOut, tt.wantErr)
		})
	}
}

func TestDecodeCatalog(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
		want    []model.CatalogItem
	}{
		{
			name: "minor units and text prices",
			yaml: "items:\n  - id: a\n    name: A\n    unit_price_minor_units: 428\n  - id: b\n    name: B\n    price: \"1,234.50\"\n    mandatory_quantity: 2\n",
			want: []model.CatalogItem{
				{ID: "a", Name: "A", UnitPriceMinorUnits: 428},
				{ID: "b", Name: "B", UnitPriceMinorUnits: 123450, MandatoryQuantity: 2},
			},
		},
		{name: "empty document", yaml: "", wantErr: "invalid catalog"},
		{name: "no items", yaml: "items: []\n", wantErr: "invalid catalog"},
		{name: "missing name", yaml: "items:\n  - price: \"1\"\n", wantErr: "invalid catalog"},
		{name: "negative mandatory quantity", yaml: "items:\n  - name: A\n    price: \"1\"\n    mandatory_quantity: -1\n", wantErr: "invalid catalog"},
		{name: "unknown field", yaml: "items:\n  - name: A\n    cost: 1\n", wantErr: "parse yaml"},
		{name: "missing price", yaml: "items:\n  - name: A\n", wantErr: dto.ErrMissingItemPrice.Error()},
		{name: "duplicate id", yaml: "items:\n  - {id: a, name: A, price: \"1\"}\n  - {id: a, name: B, price: \"2\"}\n", wantErr: dto.ErrDuplicateItemID.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := decodeCatalog(strings.NewReader(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, items)
		})
	}
}

func TestDecodeCatalog_GeneratesIDs(t *testing.T) {
	items, err := decodeCatalog(strings.NewReader("items:\n  - name: A\n    price: \"1\"\n  - name: B\n    price: \"2\"\n"))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.NotEmpty(t, items[0].ID)
	assert.NotEqual(t, items[0].ID, items[1].ID)
}
