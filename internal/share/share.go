// Package share composes the human-readable text handed to the
// platform share sheet. It is not machine-parseable and makes no
// round-trip guarantee.
package share

import (
	"fmt"
	"strings"

	"github.com/splycehq/splyce-backend/internal/domain"
)

// Compose renders the split breakdown for sharing.
func Compose(restaurantName string, totalBill, taxRate float64, entries []domain.SummaryEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Splyce bill for %s*\n", restaurantName)
	fmt.Fprintf(&sb, "Total: $%.2f\n\n", totalBill)
	fmt.Fprintf(&sb, "Breakdown (%.2f%% tax):\n", taxRate)
	for i, entry := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s: $%.2f", entry.Name, entry.TotalOwed)
	}
	return sb.String()
}
