package ui

import (
	"strings"
	"testing"

	"sitewise/internal/audit"
)

func TestSummaryRow(t *testing.T) {
	row := SummaryRow(audit.Report{TotalChecks: 10, Passed: 7, Warnings: 2, Issues: 1})
	for _, want := range []string{"✅ 7", "⚠️ 2", "❌ 1"} {
		if !strings.Contains(row, want) {
			t.Fatalf("summary row missing %q: %q", want, row)
		}
	}
}
