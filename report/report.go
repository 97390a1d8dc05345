// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/mmm-reach/models"
)

// Row is one line of the allocation table. Numeric fields keep the raw value
// next to its display text.
type Row struct {
	Channel    string  `json:"channel"`
	Model      string  `json:"model"`
	Efficiency string  `json:"efficiency"`
	Budget     float64 `json:"budget"`
	BudgetText string  `json:"budget_text"`
	Share      float64 `json:"share"`
	ShareText  string  `json:"share_text"`
	Reach      string  `json:"reach"`
}

type Table struct {
	Rows  []Row `json:"rows"`
	Total Row   `json:"total"`
}

// Report is everything the dashboard renders for one result.
type Report struct {
	Table Table `json:"table"`
	Chart Chart `json:"chart"`
}

func Build(res models.AllocationResult) Report {
	return Report{
		Table: BuildTable(res),
		Chart: BuildChart(res),
	}
}

// BuildTable lays out one row per result in response order plus a totals row.
func BuildTable(res models.AllocationResult) Table {
	rows := make([]Row, 0, len(res.Results))
	for _, r := range res.Results {
		share := Share(r.Budget, res.TotalBudget)
		rows = append(rows, Row{
			Channel:    r.Channel,
			Model:      r.SelectedModel,
			Efficiency: FormatPercent(r.TargetEfficiency),
			Budget:     r.Budget,
			BudgetText: FormatBudget(r.Budget),
			Share:      share,
			ShareText:  FormatPercent(share),
			Reach:      FormatPercent(r.Reach),
		})
	}

	return Table{
		Rows: rows,
		Total: Row{
			Channel:    "Total",
			Budget:     res.TotalBudget,
			BudgetText: FormatBudget(res.TotalBudget),
			Share:      100,
			ShareText:  "100%",
			Reach:      FormatPercent(res.TotalReach),
		},
	}
}

// Share is budget as a percentage of total. A non-positive total yields 0.
func Share(budget, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return budget / total * 100
}

// FormatPercent renders v with two decimals and a percent sign.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatBudget renders v with thousands separators and at most two fraction
// digits.
func FormatBudget(v float64) string {
	return humanize.CommafWithDigits(math.Round(v*100)/100, 2)
}

// FormatCurrency renders v with thousands separators and exactly two fraction
// digits, prefixed with the currency code.
func FormatCurrency(v float64) string {
	return "LKR " + humanize.FormatFloat("#,###.##", v)
}
