package ossgo

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/tu6ge/ossgo/pkg/credentials"
	"github.com/tu6ge/ossgo/pkg/ossutils"
)

// scriptedTransport is a minimal http.RoundTripper that records every
// request it sees and answers from handler, grounded in the teacher SDK's
// InterceptRouteTripper test seam (api-put-object_test.go).
type scriptedTransport struct {
	t        *testing.T
	requests []*http.Request
	bodies   [][]byte
	handler  func(req *http.Request, body []byte) *http.Response
}

func (s *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		if err != nil {
			s.t.Fatalf("reading request body: %v", err)
		}
	}
	s.requests = append(s.requests, req)
	s.bodies = append(s.bodies, body)
	return s.handler(req, body), nil
}

func jsonResp(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(t *testing.T, rt http.RoundTripper) *Client {
	t.Helper()
	creds, err := credentials.New("foo1", "foo2")
	if err != nil {
		t.Fatal(err)
	}
	ep, err := ossutils.NewEndPoint("cn-hangzhou")
	if err != nil {
		t.Fatal(err)
	}
	return New(ep, creds, &Options{Transport: rt})
}

func TestMultipartSmallFileSinglePut(t *testing.T) {
	tr := &scriptedTransport{t: t}
	tr.handler = func(req *http.Request, body []byte) *http.Response {
		if req.Method != http.MethodPut {
			t.Fatalf("unexpected method %s for small-file upload", req.Method)
		}
		if strings.Contains(req.URL.RawQuery, "uploads") {
			t.Fatal("small file must not initiate a multipart upload")
		}
		resp := jsonResp(http.StatusOK, "")
		resp.Header.Set("ETag", `"etagsmall"`)
		return resp
	}

	client := newTestClient(t, tr)
	bucket, _ := ossutils.NewBucketName("bkt")
	path, _ := ossutils.NewObjectPath("small.bin")

	mu, err := NewMultipartUpload(client, bucket, path, "application/octet-stream", 0)
	if err != nil {
		t.Fatal(err)
	}
	payload := bytes.Repeat([]byte{0x41}, 72)
	if _, err := mu.Write(context.Background(), payload); err != nil {
		t.Fatal(err)
	}
	if err := mu.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if mu.State() != StateDone {
		t.Errorf("state = %v, want Done", mu.State())
	}
	if len(tr.requests) != 1 {
		t.Fatalf("expected exactly 1 request, got %d", len(tr.requests))
	}
}

func TestMultipartTwoParts(t *testing.T) {
	tr := &scriptedTransport{t: t}
	var seenBodies []string
	tr.handler = func(req *http.Request, body []byte) *http.Response {
		q := req.URL.Query()
		switch {
		case req.Method == http.MethodPost && q.Has("uploads"):
			return jsonResp(http.StatusOK, `<InitiateMultipartUploadResult><UploadId>upload-123</UploadId></InitiateMultipartUploadResult>`)
		case req.Method == http.MethodPut && q.Has("partNumber"):
			seenBodies = append(seenBodies, string(body))
			resp := jsonResp(http.StatusOK, "")
			resp.Header.Set("ETag", `"etag-`+q.Get("partNumber")+`"`)
			return resp
		case req.Method == http.MethodPost && q.Has("uploadId"):
			seenBodies = append(seenBodies, string(body))
			return jsonResp(http.StatusOK, `<CompleteMultipartUploadResult></CompleteMultipartUploadResult>`)
		default:
			t.Fatalf("unexpected request %s %s", req.Method, req.URL)
			return nil
		}
	}

	client := newTestClient(t, tr)
	bucket, _ := ossutils.NewBucketName("bkt")
	path, _ := ossutils.NewObjectPath("multi.bin")

	mu, err := NewMultipartUpload(client, bucket, path, "application/octet-stream", 0)
	if err != nil {
		t.Fatal(err)
	}
	// NewMultipartUpload rejects part sizes below MinPartSize, so the
	// 3-byte part size is set directly to keep both parts tiny.
	mu.partSize = 3
	ctx := context.Background()
	if _, err := mu.Write(ctx, []byte("aaa")); err != nil {
		t.Fatal(err)
	}
	if _, err := mu.Write(ctx, []byte("bbb")); err != nil {
		t.Fatal(err)
	}
	if err := mu.Flush(ctx); err != nil {
		t.Fatal(err)
	}
	if mu.State() != StateDone {
		t.Errorf("state = %v, want Done", mu.State())
	}

	if len(tr.requests) != 4 {
		t.Fatalf("expected 4 requests (initiate, part1, part2, complete), got %d", len(tr.requests))
	}
	if !tr.requests[0].URL.Query().Has("uploads") {
		t.Errorf("request 0 should be the initiate call")
	}
	if tr.requests[1].URL.Query().Get("partNumber") != "1" || seenBodies[0] != "aaa" {
		t.Errorf("request 1 should upload part 1 with body 'aaa', got body %q", seenBodies[0])
	}
	if tr.requests[2].URL.Query().Get("partNumber") != "2" || seenBodies[1] != "bbb" {
		t.Errorf("request 2 should upload part 2 with body 'bbb', got body %q", seenBodies[1])
	}
	completeBody := seenBodies[2]
	if !strings.Contains(completeBody, "<CompleteMultipartUpload>") ||
		!strings.Contains(completeBody, "<PartNumber>1</PartNumber>") ||
		!strings.Contains(completeBody, "<PartNumber>2</PartNumber>") {
		t.Errorf("complete body missing expected parts: %q", completeBody)
	}
}

func TestMultipartRejectsOutOfRangePartSize(t *testing.T) {
	client := newTestClient(t, &scriptedTransport{t: t, handler: func(*http.Request, []byte) *http.Response { return nil }})
	bucket, _ := ossutils.NewBucketName("bkt")
	path, _ := ossutils.NewObjectPath("x.bin")

	if _, err := NewMultipartUpload(client, bucket, path, "", 1); err == nil {
		t.Error("expected error for part size below MinPartSize")
	}
	if _, err := NewMultipartUpload(client, bucket, path, "", MaxPartSize+1); err == nil {
		t.Error("expected error for part size above MaxPartSize")
	}
}
