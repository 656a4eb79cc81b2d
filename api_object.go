package ossgo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tu6ge/ossgo/pkg/ossutils"
)

// PutObject uploads body as a single request. size is the exact byte
// count (required: it becomes Content-Length, and the server rejects a
// chunked PUT). Returns the ETag the service assigns.
func (c *Client) PutObject(ctx context.Context, bucket ossutils.BucketName, path ossutils.ObjectPath, body io.Reader, size int64, contentType ContentType) (string, error) {
	resp, err := c.sendExpectSuccess(ctx, request{
		method:      http.MethodPut,
		bucket:      bucket,
		objectPath:  path.String(),
		body:        body,
		contentLen:  size,
		contentType: contentType,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	etag := stripETagQuotes(resp.Header.Get("ETag"))
	if etag == "" {
		return "", &ProtocolError{Missing: "ETag"}
	}
	return etag, nil
}

// PutObjectWithOptions is PutObject plus the metadata/conditional headers
// carried by opts (user metadata, content headers, storage class,
// If-Match/If-None-Match).
func (c *Client) PutObjectWithOptions(ctx context.Context, bucket ossutils.BucketName, path ossutils.ObjectPath, body io.Reader, size int64, opts PutObjectOptions) (string, error) {
	header := opts.Header()
	resp, err := c.sendExpectSuccess(ctx, request{
		method:      http.MethodPut,
		bucket:      bucket,
		objectPath:  path.String(),
		body:        body,
		contentLen:  size,
		header:      header,
		contentType: ContentType(header.Get("Content-Type")),
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	etag := stripETagQuotes(resp.Header.Get("ETag"))
	if etag == "" {
		return "", &ProtocolError{Missing: "ETag"}
	}
	return etag, nil
}

// GetObjectRange issues a ranged GET covering [offset, offset+length) and
// returns the response body for the caller to stream. The caller must
// close it.
func (c *Client) GetObjectRange(ctx context.Context, bucket ossutils.BucketName, path ossutils.ObjectPath, offset, length int64) (io.ReadCloser, error) {
	h := make(http.Header)
	h.Set("Range", fmt.Sprintf("bytes=%d-%d", offset, offset+length-1))
	resp, err := c.sendExpectSuccess(ctx, request{
		method:     http.MethodGet,
		bucket:     bucket,
		objectPath: path.String(),
		header:     h,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// HeadObject fetches an object's metadata without its body, via a HEAD
// on the object's "?objectMeta" sub-resource.
func (c *Client) HeadObject(ctx context.Context, bucket ossutils.BucketName, path ossutils.ObjectPath) (HeadObjectResult, error) {
	resp, err := c.sendExpectSuccess(ctx, request{
		method:     http.MethodHead,
		bucket:     bucket,
		objectPath: path.String(),
		query:      url.Values{"objectMeta": {""}},
	})
	if err != nil {
		return HeadObjectResult{}, err
	}
	defer resp.Body.Close()

	var result HeadObjectResult
	result.ETag = stripETagQuotes(resp.Header.Get("ETag"))
	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		t, err := time.Parse(http.TimeFormat, lm)
		if err != nil {
			return HeadObjectResult{}, &ProtocolError{Missing: "Last-Modified (unparsable)"}
		}
		result.LastModified = t
	}
	if resp.ContentLength < 0 {
		return HeadObjectResult{}, &ProtocolError{Missing: "Content-Length"}
	}
	result.Size = resp.ContentLength
	return result, nil
}

// DeleteObject removes a single object. Any non-success response, 404
// included, is returned as a *ServiceError; no idempotent-delete handling
// is added on top of the service's own answer.
func (c *Client) DeleteObject(ctx context.Context, bucket ossutils.BucketName, path ossutils.ObjectPath) error {
	resp, err := c.sendExpectSuccess(ctx, request{
		method:     http.MethodDelete,
		bucket:     bucket,
		objectPath: path.String(),
	})
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// CopyObject server-side copies src (within the same bucket) to dst.
func (c *Client) CopyObject(ctx context.Context, bucket ossutils.BucketName, src, dst ossutils.ObjectPath) error {
	h := make(http.Header)
	h.Set("x-oss-copy-source", "/"+string(bucket)+"/"+src.String())
	resp, err := c.sendExpectSuccess(ctx, request{
		method:     http.MethodPut,
		bucket:     bucket,
		objectPath: dst.String(),
		header:     h,
	})
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
