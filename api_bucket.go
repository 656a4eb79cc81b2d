package ossgo

import (
	"context"
	"net/url"

	"github.com/tu6ge/ossgo/pkg/ossutils"
)

// ListBuckets lists every bucket owned by this client's credentials.
func (c *Client) ListBuckets(ctx context.Context) (BucketListResult, error) {
	resp, err := c.sendExpectSuccess(ctx, request{method: "GET"})
	if err != nil {
		return BucketListResult{}, err
	}
	defer resp.Body.Close()
	return DecodeBucketList(resp.Body)
}

// BucketInfo fetches metadata about a single bucket via the "?bucketInfo"
// sub-resource.
func (c *Client) BucketInfo(ctx context.Context, bucket ossutils.BucketName) (BucketInfoResult, error) {
	q := url.Values{"bucketInfo": {""}}
	resp, err := c.sendExpectSuccess(ctx, request{method: "GET", bucket: bucket, query: q})
	if err != nil {
		return BucketInfoResult{}, err
	}
	defer resp.Body.Close()
	return DecodeBucketInfo(resp.Body)
}
