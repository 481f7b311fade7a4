package models

import "encoding/json"

// Credentials identifies the API application used to mint bearer tokens.
// Secret must never be logged or embedded in error messages.
type Credentials struct {
	ApplicationID string
	Secret        string
}

// FindingsPage is one page of the failed-assets audit response.
// It mirrors the wire envelope: everything of interest sits under "result".
type FindingsPage struct {
	Result FindingsResult `json:"result"`
}

// FindingsResult carries the failed-asset total and the per-account result
// blocks contained in this page.
type FindingsResult struct {
	// FailedAssetCount is the total number of failed assets for the
	// account/benchmark across ALL pages, not just this one. Callers use it
	// to derive the page count.
	FailedAssetCount int             `json:"failedAssetCount"`
	Accounts         []AccountResult `json:"accounts"`
}

// AccountResult groups the failed assets of one cloud account together with
// the account and benchmark metadata repeated on every flattened row.
type AccountResult struct {
	AccountID     string              `json:"accountId"`
	AccountName   string              `json:"accountName"`
	ConnectorType string              `json:"connectorType"`
	BenchmarkID   string              `json:"benchmarkId"`
	BenchmarkName string              `json:"benchmarkName"`
	FailedAssets  []FailedPolicyAsset `json:"failedPolicyAssetsLists"`
}

// FailedPolicyAsset is a single cloud resource that violates one policy rule
// of the selected benchmark. One FailedPolicyAsset becomes one CSV row.
type FailedPolicyAsset struct {
	ResourceName string `json:"resourceName"`
	AccessLevel  string `json:"accessLevel"`
	ResourceType string `json:"resourceType"`
	ResourceID   string `json:"resourceId"`
	PolicyID     string `json:"policyId"`
	PolicyTitle  string `json:"policyTitle"`
	Region       string `json:"region"`

	// Tags is kept raw because the API emits several shapes (string list,
	// key/value object list, plain string). Rendering is the report
	// package's concern.
	Tags json.RawMessage `json:"tags"`
}

// FailedAssetTotal returns the number of failed assets present in this page:
// the sum over account blocks of each block's asset list length. This is the
// per-page row count, distinct from Result.FailedAssetCount.
func (p *FindingsPage) FailedAssetTotal() int {
	var n int
	for _, acct := range p.Result.Accounts {
		n += len(acct.FailedAssets)
	}
	return n
}
