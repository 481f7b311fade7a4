// Package report turns failed-asset pages into the CSV report and drives the
// per-account export loop.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/igt-all/docs-cloudneeti/internal/models"
)

// csvHeader is the report's fixed column order. Changing it breaks every
// downstream consumer of the CSV; treat it as a published contract.
var csvHeader = []string{
	"Asset Name",
	"Access Level",
	"Asset Type",
	"Asset Id",
	"Policy Id",
	"Policy Title",
	"Region",
	"Tags",
	"Account Id",
	"Account Name",
	"Cloud Provider",
	"Benchmark ID",
	"Benchmark Name",
}

// AppendPage flattens one findings page into CSV rows appended to path and
// returns the number of data rows written. The file is created on first use
// and the header row is written exactly once, when the file is empty. One
// row is emitted per failed asset per account block.
func AppendPage(path string, page *models.FindingsPage) (int, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open output file %q: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat output file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return 0, fmt.Errorf("write csv header: %w", err)
		}
	}

	var rows int
	for _, acct := range page.Result.Accounts {
		for _, asset := range acct.FailedAssets {
			record := []string{
				asset.ResourceName,
				asset.AccessLevel,
				asset.ResourceType,
				asset.ResourceID,
				asset.PolicyID,
				asset.PolicyTitle,
				asset.Region,
				formatTags(asset.Tags),
				acct.AccountID,
				acct.AccountName,
				acct.ConnectorType,
				acct.BenchmarkID,
				acct.BenchmarkName,
			}
			if err := w.Write(record); err != nil {
				return rows, fmt.Errorf("write csv row: %w", err)
			}
			rows++
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return rows, fmt.Errorf("flush csv: %w", err)
	}
	return rows, nil
}

// tagPair is the key/value object shape some connectors report tags in.
type tagPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// formatTags renders the Tags column. The API emits tags in several shapes,
// so the serialization contract is explicit here:
//
//   - list of strings            -> "a, b"
//   - list of key/value objects  -> "env: prod, team: sre"
//   - object map                 -> "env: prod, team: sre" (keys sorted)
//   - bare string                -> passed through, one enclosing [ ] pair trimmed
//   - null / absent              -> ""
//
// Anything else falls back to the compact JSON text.
func formatTags(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var plain []string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return strings.Join(plain, ", ")
	}

	var pairs []tagPair
	if err := json.Unmarshal(raw, &pairs); err == nil {
		parts := make([]string, 0, len(pairs))
		for _, p := range pairs {
			parts = append(parts, p.Key+": "+p.Value)
		}
		return strings.Join(parts, ", ")
	}

	var kv map[string]string
	if err := json.Unmarshal(raw, &kv); err == nil {
		keys := make([]string, 0, len(kv))
		for k := range kv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+kv[k])
		}
		return strings.Join(parts, ", ")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		// Legacy payloads carry a pre-stringified list like "[prod]".
		if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
			s = s[1 : len(s)-1]
		}
		return s
	}

	return string(raw)
}
