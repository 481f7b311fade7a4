package models

// Status is the per-account outcome of an export run.
type Status string

const (
	StatusSuccess Status = "Success"
	StatusFailed  Status = "Failed"
)

// SummaryEntry records the outcome for one processed account.
// Detail holds the row count message on success or the extracted error
// message on failure.
type SummaryEntry struct {
	AccountID string `json:"account_id"`
	Status    Status `json:"status"`
	Detail    string `json:"detail"`
}

// RunSummary is the aggregate result of one export run across all accounts.
// Entries are kept in account-processing order; rendering sorts by status.
type RunSummary struct {
	Entries       []SummaryEntry `json:"entries"`
	OutputPath    string         `json:"output_path"`
	OutputCreated bool           `json:"output_created"`
	TotalRows     int            `json:"total_rows"`
}

// Processed returns the number of accounts the run attempted.
func (s *RunSummary) Processed() int { return len(s.Entries) }

// Passed returns the number of accounts that exported successfully.
func (s *RunSummary) Passed() int {
	var n int
	for _, e := range s.Entries {
		if e.Status == StatusSuccess {
			n++
		}
	}
	return n
}

// Failed returns the number of accounts that were skipped after an error.
func (s *RunSummary) Failed() int { return s.Processed() - s.Passed() }
