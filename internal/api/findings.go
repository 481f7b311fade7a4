package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/igt-all/docs-cloudneeti/internal/models"
)

// FailedAssets fetches one page of failed-asset findings for the account.
// pageNumber is 1-based. The page is returned as decoded; pagination policy
// (deriving the page count from FailedAssetCount) belongs to the caller.
func (c *Client) FailedAssets(ctx context.Context, licenseID, accountID, accountToken, benchmarkID string, pageNumber, pageSize int) (*models.FindingsPage, error) {
	q := url.Values{}
	q.Set("benchmarkId", benchmarkID)
	q.Set("pageNumber", fmt.Sprint(pageNumber))
	q.Set("pageSize", fmt.Sprint(pageSize))

	u := fmt.Sprintf("%s/audit/license/%s/account/%s/failedassets?%s",
		c.baseURL, url.PathEscape(licenseID), url.PathEscape(accountID), q.Encode())

	var page models.FindingsPage
	if err := c.doJSON(ctx, http.MethodGet, u, nil, accountToken, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
