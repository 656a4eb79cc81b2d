package ossgo

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/tu6ge/ossgo/pkg/credentials"
	"github.com/tu6ge/ossgo/pkg/ossutils"
)

// Options configures a Client. Transport is the single middleware seam:
// production code leaves it nil (http.DefaultTransport), tests supply an
// http.RoundTripper that replays fixtures instead of hitting the network,
// grounded directly in the teacher SDK's InterceptRouteTripper / Options{
// Transport: rt} pattern (api-put-object_test.go).
type Options struct {
	Transport http.RoundTripper
	Internal  bool
	Logger    Logger
}

// Client is the facade every operation in this package is a method of. The
// zero value is not usable; construct with New.
type Client struct {
	creds    credentials.Credentials
	endpoint ossutils.EndPoint
	signer   *Signer
	http     *http.Client
	logger   Logger
}

// New constructs a Client for endpoint using creds. opts may be nil.
func New(endpoint ossutils.EndPoint, creds credentials.Credentials, opts *Options) *Client {
	if opts == nil {
		opts = &Options{}
	}
	ep := endpoint.WithInternal(opts.Internal)
	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	return &Client{
		creds:    creds,
		endpoint: ep,
		signer:   NewSigner(creds),
		http:     &http.Client{Transport: opts.Transport},
		logger:   logger,
	}
}

// request is the unsigned description of an outbound call; buildRequest
// signs it at send time, not at construction time, so the Date header
// always reflects the moment the bytes actually leave.
type request struct {
	method      string
	bucket      ossutils.BucketName
	objectPath  string
	query       url.Values
	header      http.Header
	body        io.Reader
	contentMD5  ContentMd5
	contentType ContentType
	contentLen  int64
}

func (c *Client) hostFor(bucket ossutils.BucketName) string {
	if bucket == "" {
		return c.endpoint.Host()
	}
	return string(bucket) + "." + c.endpoint.Host()
}

// buildRequest turns req into a signed *http.Request, computing the
// canonicalized resource from the assembled URL per BuildResource and
// signing immediately before returning, per spec.md §4.4.
func (c *Client) buildRequest(ctx context.Context, req request) (*http.Request, error) {
	u := &url.URL{
		Scheme: "https",
		Host:   c.hostFor(req.bucket),
		Path:   "/" + req.objectPath,
	}
	if req.query != nil {
		u.RawQuery = req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), req.body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if req.header != nil {
		httpReq.Header = req.header.Clone()
	}
	if req.contentLen > 0 {
		httpReq.ContentLength = req.contentLen
	}

	resource := BuildResource(u, req.bucket, req.objectPath)
	signed, err := c.signer.Sign(req.method, httpReq.Header, resource, req.contentMD5, req.contentType)
	if err != nil {
		return nil, err
	}
	httpReq.Header = signed
	return httpReq, nil
}

// send issues req and returns the raw response. The caller owns closing
// resp.Body.
func (c *Client) send(ctx context.Context, req request) (*http.Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return resp, nil
}

// isSuccessStatus reports whether status is one this client treats as a
// successful outcome, per spec.md §4.4: 200, 204, 206 (partial content,
// returned by ranged GETs).
func isSuccessStatus(status int) bool {
	return status == http.StatusOK || status == http.StatusNoContent || status == http.StatusPartialContent
}

// sendExpectSuccess issues req and, on a non-success status, parses the
// service's XML error document into a *ServiceError instead of returning
// the raw response. On success it returns the response with the body
// still open for the caller to stream or decode.
func (c *Client) sendExpectSuccess(ctx context.Context, req request) (*http.Response, error) {
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if isSuccessStatus(resp.StatusCode) {
		return resp, nil
	}
	defer resp.Body.Close()
	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, &TransportError{Err: readErr}
	}
	se, decErr := DecodeServiceError(bytes.NewReader(body), resp.StatusCode)
	if decErr != nil || se.Code == "" {
		return nil, &ServiceError{Code: "Undefined", Status: resp.StatusCode, Message: string(body)}
	}
	return nil, se
}
