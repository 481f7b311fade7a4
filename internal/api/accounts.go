package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// auditScope is the permission the listing token must carry for the
// failed-assets endpoints to be reachable at all.
const auditScope = "Account.Audit"

// ErrAuditScopeMissing reports that the license token lacks the audit
// permission. Without it every per-account call would fail, so callers
// abort the run instead of iterating accounts.
var ErrAuditScopeMissing = errors.New("license token does not carry the " + auditScope + " permission")

// licenseAccountsResponse is the onboarding endpoint's response envelope.
type licenseAccountsResponse struct {
	Result struct {
		Accounts []struct {
			AccountID string `json:"accountId"`
		} `json:"accounts"`
		APIs []string `json:"apis"`
	} `json:"result"`
}

// ListAccounts returns every account id under the license, in the order the
// API reports them. It fails with ErrAuditScopeMissing when result.apis does
// not include the audit permission.
func (c *Client) ListAccounts(ctx context.Context, licenseID, licenseToken string) ([]string, error) {
	u := fmt.Sprintf("%s/onboarding/license/%s/licenseAccounts", c.baseURL, url.PathEscape(licenseID))

	var resp licenseAccountsResponse
	if err := c.doJSON(ctx, http.MethodGet, u, nil, licenseToken, &resp); err != nil {
		return nil, err
	}

	hasScope := false
	for _, scope := range resp.Result.APIs {
		if scope == auditScope {
			hasScope = true
			break
		}
	}
	if !hasScope {
		return nil, ErrAuditScopeMissing
	}

	ids := make([]string, 0, len(resp.Result.Accounts))
	for _, a := range resp.Result.Accounts {
		ids = append(ids, a.AccountID)
	}
	return ids, nil
}
