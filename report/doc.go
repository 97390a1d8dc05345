// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package report turns an allocation result into the table and pie chart the
// dashboard shows. Share of total is budget/total_budget*100; totals are taken
// from the result as sent.
package report
