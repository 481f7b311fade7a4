package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/igt-all/docs-cloudneeti/internal/models"
)

// PrintSummary renders the per-account outcome table followed by the run
// totals. Failed accounts are listed first so problems are visible without
// scrolling; within a status the processing order is preserved.
func PrintSummary(w io.Writer, s *models.RunSummary) {
	entries := make([]models.SummaryEntry, len(s.Entries))
	copy(entries, s.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Status == models.StatusFailed && entries[j].Status != models.StatusFailed
	})

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-38s  %-8s  %s\n", "ACCOUNT ID", "STATUS", "DETAIL")
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 80))
	for _, e := range entries {
		fmt.Fprintf(w, "%-38s  %-8s  %s\n", e.AccountID, string(e.Status), e.Detail)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Accounts processed:  %d\n", s.Processed())
	fmt.Fprintf(w, "Accounts failed:     %d\n", s.Failed())
	fmt.Fprintf(w, "Accounts passed:     %d\n", s.Passed())
	fmt.Fprintf(w, "Total rows written:  %d\n", s.TotalRows)

	if s.OutputCreated {
		fmt.Fprintf(w, "Report written to %s\n", s.OutputPath)
	} else {
		fmt.Fprintf(w, "No report file was created (%s)\n", s.OutputPath)
	}
}
