package report

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/igt-all/docs-cloudneeti/internal/models"
)

// AuditAPI is the slice of the CSPM API the runner needs. The production
// implementation is api.Client; tests substitute a fake.
type AuditAPI interface {
	// LicenseToken mints a license-scoped token used only to list accounts.
	LicenseToken(ctx context.Context, licenseID string) (string, error)

	// AccountToken mints a token scoped to one account.
	AccountToken(ctx context.Context, licenseID, accountID string) (string, error)

	// ListAccounts returns the account ids under the license, in API order.
	ListAccounts(ctx context.Context, licenseID, licenseToken string) ([]string, error)

	// FailedAssets fetches one findings page (pageNumber is 1-based).
	FailedAssets(ctx context.Context, licenseID, accountID, accountToken, benchmarkID string, pageNumber, pageSize int) (*models.FindingsPage, error)
}

// Options configures one export run.
type Options struct {
	// LicenseID is the license whose accounts are exported.
	LicenseID string

	// BenchmarkID names the compliance ruleset to query.
	BenchmarkID string

	// OutputPath is the CSV file every page is appended to.
	OutputPath string

	// PageSize is the failed-assets page size (1000 in production).
	PageSize int
}

// Runner drives the export: resolve the account list, then walk each account
// sequentially, appending every fetched page to the output file.
type Runner struct {
	api  AuditAPI
	opts Options
	log  *logrus.Logger
}

// NewRunner wires a Runner to the supplied API client.
func NewRunner(api AuditAPI, opts Options, log *logrus.Logger) *Runner {
	return &Runner{api: api, opts: opts, log: log}
}

// Run exports failed assets for the given accounts. When accountIDs is
// empty, the full account list is resolved via the onboarding API first; a
// failure there (including a missing audit permission) aborts the whole run
// before any output is written.
//
// Per-account failures are isolated: the account is recorded as Failed with
// the extracted error message and the loop moves on. Rows already appended
// for a failed account are not rolled back.
func (r *Runner) Run(ctx context.Context, accountIDs []string) (*models.RunSummary, error) {
	accounts, err := r.resolveAccounts(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	r.log.WithField("accounts", len(accounts)).Info("starting failed-asset export")

	entries := make([]models.SummaryEntry, 0, len(accounts))
	var totalRows int
	for _, accountID := range accounts {
		rows, err := r.exportAccount(ctx, accountID)
		if err != nil {
			r.log.WithField("account", accountID).WithError(err).Error("account export failed; continuing")
			entries = append(entries, models.SummaryEntry{
				AccountID: accountID,
				Status:    models.StatusFailed,
				Detail:    err.Error(),
			})
			continue
		}

		totalRows += rows
		r.log.WithFields(logrus.Fields{"account": accountID, "rows": rows}).Info("account exported")
		entries = append(entries, models.SummaryEntry{
			AccountID: accountID,
			Status:    models.StatusSuccess,
			Detail:    fmt.Sprintf("Number of records added: %d", rows),
		})
	}

	summary := &models.RunSummary{
		Entries:    entries,
		OutputPath: r.opts.OutputPath,
		TotalRows:  totalRows,
	}
	if _, err := os.Stat(r.opts.OutputPath); err == nil {
		summary.OutputCreated = true
	}
	return summary, nil
}

// resolveAccounts returns the explicit list when provided, otherwise lists
// accounts through a freshly minted license token. Errors here are fatal to
// the run.
func (r *Runner) resolveAccounts(ctx context.Context, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}

	licenseToken, err := r.api.LicenseToken(ctx, r.opts.LicenseID)
	if err != nil {
		return nil, fmt.Errorf("mint license token: %w", err)
	}

	accounts, err := r.api.ListAccounts(ctx, r.opts.LicenseID, licenseToken)
	if err != nil {
		return nil, fmt.Errorf("list license accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("license has no onboarded accounts")
	}
	return accounts, nil
}

// exportAccount mints the account token, fetches page 1, derives the page
// count from failedAssetCount, and fetches and flattens the remaining pages
// sequentially. Pages are appended as they arrive; the run never buffers
// more than one page in memory.
func (r *Runner) exportAccount(ctx context.Context, accountID string) (int, error) {
	token, err := r.api.AccountToken(ctx, r.opts.LicenseID, accountID)
	if err != nil {
		return 0, fmt.Errorf("mint account token: %w", err)
	}

	page, err := r.api.FailedAssets(ctx, r.opts.LicenseID, accountID, token, r.opts.BenchmarkID, 1, r.opts.PageSize)
	if err != nil {
		return 0, fmt.Errorf("fetch page 1: %w", err)
	}

	rows, err := AppendPage(r.opts.OutputPath, page)
	if err != nil {
		return rows, fmt.Errorf("flatten page 1: %w", err)
	}

	pageCount := 1
	if total := page.Result.FailedAssetCount; total > r.opts.PageSize {
		pageCount = (total + r.opts.PageSize - 1) / r.opts.PageSize
	}
	r.log.WithFields(logrus.Fields{
		"account": accountID,
		"total":   page.Result.FailedAssetCount,
		"pages":   pageCount,
	}).Debug("derived page count")

	for n := 2; n <= pageCount; n++ {
		page, err := r.api.FailedAssets(ctx, r.opts.LicenseID, accountID, token, r.opts.BenchmarkID, n, r.opts.PageSize)
		if err != nil {
			return rows, fmt.Errorf("fetch page %d: %w", n, err)
		}
		n2, err := AppendPage(r.opts.OutputPath, page)
		rows += n2
		if err != nil {
			return rows, fmt.Errorf("flatten page %d: %w", n, err)
		}
	}
	return rows, nil
}
