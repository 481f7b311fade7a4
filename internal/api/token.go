package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// tokenRequest is the authorize endpoint's request body. Field names match
// the wire contract exactly.
type tokenRequest struct {
	APIApplicationID string `json:"APIApplicationId"`
	Secret           string `json:"Secret"`
}

// tokenResponse is the authorize endpoint's response envelope.
type tokenResponse struct {
	Result struct {
		Token string `json:"token"`
	} `json:"result"`
}

// LicenseToken mints a license-scoped bearer token, valid for listing the
// accounts under the license.
func (c *Client) LicenseToken(ctx context.Context, licenseID string) (string, error) {
	u := fmt.Sprintf("%s/authorize/license/%s/token", c.baseURL, url.PathEscape(licenseID))
	return c.mintToken(ctx, u)
}

// AccountToken mints an account-scoped bearer token, valid for the audit
// endpoints of that single account. One token is minted per account per run
// and used immediately; tokens are never cached.
func (c *Client) AccountToken(ctx context.Context, licenseID, accountID string) (string, error) {
	u := fmt.Sprintf("%s/authorize/license/%s/token?accountId=%s",
		c.baseURL, url.PathEscape(licenseID), url.QueryEscape(accountID))
	return c.mintToken(ctx, u)
}

func (c *Client) mintToken(ctx context.Context, u string) (string, error) {
	body := tokenRequest{
		APIApplicationID: c.creds.ApplicationID,
		Secret:           c.creds.Secret,
	}

	var resp tokenResponse
	if err := c.doJSON(ctx, http.MethodPost, u, body, "", &resp); err != nil {
		return "", err
	}
	if resp.Result.Token == "" {
		return "", fmt.Errorf("token response missing result.token")
	}
	return resp.Result.Token, nil
}
