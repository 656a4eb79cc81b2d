package ossgo

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tu6ge/ossgo/pkg/ossutils"
)

// ObjectsStream walks a bucket listing page by page, carrying the
// continuation token between calls. Grounded in the teacher SDK's
// channel-based listing pipeline (api-list.go), adapted to an explicit
// pull model (Next(ctx)) instead of a background goroutine+channel, since
// this client has no equivalent of the teacher's always-on listing
// channel consumer.
type ObjectsStream struct {
	client    *Client
	bucket    ossutils.BucketName
	prefix    string
	delimiter string
	token     string
	done      bool
}

// ListObjects begins a listing of bucket, filtered by prefix and
// delimiter (either may be empty). Call Next until it reports no more
// pages.
func (c *Client) ListObjects(bucket ossutils.BucketName, prefix, delimiter string) *ObjectsStream {
	return &ObjectsStream{client: c, bucket: bucket, prefix: prefix, delimiter: delimiter}
}

// Next fetches the next page. The second return value is false once the
// stream is exhausted; callers should stop calling Next at that point.
func (s *ObjectsStream) Next(ctx context.Context) (ObjectsPage, bool, error) {
	if s.done {
		return ObjectsPage{}, false, nil
	}

	q := url.Values{}
	q.Set("list-type", "2")
	if s.prefix != "" {
		q.Set("prefix", s.prefix)
	}
	if s.delimiter != "" {
		q.Set("delimiter", s.delimiter)
	}
	if s.token != "" {
		q.Set("continuation-token", s.token)
	}

	resp, err := s.client.sendExpectSuccess(ctx, request{
		method: http.MethodGet,
		bucket: s.bucket,
		query:  q,
	})
	if err != nil {
		return ObjectsPage{}, false, err
	}
	defer resp.Body.Close()

	page, err := DecodeObjectsPage(resp.Body)
	if err != nil {
		return ObjectsPage{}, false, err
	}

	if page.HasMore() {
		s.token = page.NextContinuationToken
	} else {
		s.done = true
	}
	return page, true, nil
}
