package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/igt-all/docs-cloudneeti/internal/api"
	"github.com/igt-all/docs-cloudneeti/internal/config"
	"github.com/igt-all/docs-cloudneeti/internal/report"
	"github.com/igt-all/docs-cloudneeti/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cspmreport",
		Short: "Export CSPM audit findings for the accounts under a license",
	}
	root.AddCommand(newExportCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export commands",
	}
	cmd.AddCommand(newFailedAssetsCmd())
	return cmd
}

func newFailedAssetsCmd() *cobra.Command {
	var (
		environment string
		licenseID   string
		accountIDs  []string
		benchmarkID string
		output      string
		pageSize    int
		httpTimeout time.Duration
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "failedassets",
		Short: "Export every failed asset under a license to a CSV report",
		Long: `Exports the failed-asset audit findings of every cloud account under a
license into one CSV file, one row per failed asset.

Credentials are read from the environment (or a .env file in the working
directory): CSPM_APP_ID, CSPM_APP_SECRET, CSPM_SUBSCRIPTION_KEY.

Accounts are processed one at a time; a failure on one account is recorded
and the export continues with the next. The summary table at the end lists
the outcome of every account.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			secrets, err := config.LoadSecrets()
			if err != nil {
				return err
			}

			if output == "" {
				output = fmt.Sprintf("failed_asset-%s.csv", time.Now().Format("20060102150405"))
			}

			cfg := config.Config{
				Environment: environment,
				LicenseID:   licenseID,
				AccountIDs:  accountIDs,
				BenchmarkID: benchmarkID,
				OutputPath:  output,
				PageSize:    pageSize,
				HTTPTimeout: httpTimeout,
				Secrets:     secrets,
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := newLogger(verbose)
			client := api.New(cfg.APIHost, cfg.Secrets.SubscriptionKey, cfg.Credentials(), cfg.HTTPTimeout, log)
			runner := report.NewRunner(client, report.Options{
				LicenseID:   cfg.LicenseID,
				BenchmarkID: cfg.BenchmarkID,
				OutputPath:  cfg.OutputPath,
				PageSize:    cfg.PageSize,
			}, log)

			summary, err := runner.Run(cmd.Context(), cfg.AccountIDs)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			report.PrintSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&environment, "environment", "prod",
		fmt.Sprintf("CSPM environment: %s", strings.Join(config.Environments(), ", ")))
	cmd.Flags().StringVar(&licenseID, "license-id", "", "License UUID to export (required)")
	cmd.Flags().StringSliceVar(&accountIDs, "account-id", nil,
		"Account UUID(s) to export (default: every account under the license)")
	cmd.Flags().StringVar(&benchmarkID, "benchmark-id", "CSBP", "Benchmark to query")
	cmd.Flags().StringVar(&output, "output", "", "Output CSV path (default: failed_asset-<timestamp>.csv)")
	cmd.Flags().IntVar(&pageSize, "page-size", 1000, "Failed-assets page size")
	cmd.Flags().DurationVar(&httpTimeout, "http-timeout", 60*time.Second, "Timeout per API call")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log every API call at debug level")
	cmd.MarkFlagRequired("license-id")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

// newLogger builds the console logger. Progress lines go to stderr so stdout
// stays clean for the summary table.
func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
