package ossgo

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/tu6ge/ossgo/pkg/ossutils"
)

func TestPutObjectOptionsHeader(t *testing.T) {
	opts := PutObjectOptions{
		ContentType:  "text/plain",
		StorageClass: "IA",
		UserMetadata: map[string]string{"owner": "alice"},
	}
	opts.SetMatchETag("abc123")

	h := opts.Header()
	if h.Get("Content-Type") != "text/plain" {
		t.Errorf("Content-Type = %q", h.Get("Content-Type"))
	}
	if h.Get("x-oss-storage-class") != "IA" {
		t.Errorf("x-oss-storage-class = %q", h.Get("x-oss-storage-class"))
	}
	if h.Get("x-oss-meta-owner") != "alice" {
		t.Errorf("x-oss-meta-owner = %q", h.Get("x-oss-meta-owner"))
	}
	if h.Get("If-Match") != `"abc123"` {
		t.Errorf("If-Match = %q", h.Get("If-Match"))
	}
}

func TestPutObjectWithOptionsDefaultsContentType(t *testing.T) {
	tr := &scriptedTransport{t: t}
	tr.handler = func(req *http.Request, body []byte) *http.Response {
		if req.Header.Get("Content-Type") != "application/octet-stream" {
			t.Errorf("Content-Type = %q", req.Header.Get("Content-Type"))
		}
		resp := jsonResp(http.StatusOK, "")
		resp.Header.Set("ETag", `"e"`)
		return resp
	}
	client := newTestClient(t, tr)
	bucket, _ := ossutils.NewBucketName("bkt")
	path, _ := ossutils.NewObjectPath("o.bin")

	_, err := client.PutObjectWithOptions(context.Background(), bucket, path, strings.NewReader("x"), 1, PutObjectOptions{})
	if err != nil {
		t.Fatal(err)
	}
}

func TestHeadObjectParsesMetadata(t *testing.T) {
	tr := &scriptedTransport{t: t}
	tr.handler = func(req *http.Request, body []byte) *http.Response {
		if req.Method != http.MethodHead {
			t.Fatalf("expected HEAD, got %s", req.Method)
		}
		resp := jsonResp(http.StatusOK, "")
		resp.Header.Set("ETag", `"etag1"`)
		resp.Header.Set("Last-Modified", "Mon, 02 Jan 2006 15:04:05 GMT")
		resp.ContentLength = 42
		return resp
	}
	client := newTestClient(t, tr)
	bucket, _ := ossutils.NewBucketName("bkt")
	path, _ := ossutils.NewObjectPath("o.bin")

	info, err := client.HeadObject(context.Background(), bucket, path)
	if err != nil {
		t.Fatal(err)
	}
	if info.ETag != "etag1" || info.Size != 42 {
		t.Errorf("unexpected HeadObjectResult: %+v", info)
	}
}

func TestDeleteObjectSuccess(t *testing.T) {
	tr := &scriptedTransport{t: t}
	tr.handler = func(req *http.Request, body []byte) *http.Response {
		if req.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", req.Method)
		}
		return jsonResp(http.StatusNoContent, "")
	}
	client := newTestClient(t, tr)
	bucket, _ := ossutils.NewBucketName("bkt")
	path, _ := ossutils.NewObjectPath("o.bin")

	if err := client.DeleteObject(context.Background(), bucket, path); err != nil {
		t.Fatal(err)
	}
}

func TestCopyObjectSetsCopySourceHeader(t *testing.T) {
	tr := &scriptedTransport{t: t}
	tr.handler = func(req *http.Request, body []byte) *http.Response {
		if got := req.Header.Get("x-oss-copy-source"); got != "/bkt/src.bin" {
			t.Errorf("x-oss-copy-source = %q", got)
		}
		return jsonResp(http.StatusOK, "")
	}
	client := newTestClient(t, tr)
	bucket, _ := ossutils.NewBucketName("bkt")
	src, _ := ossutils.NewObjectPath("src.bin")
	dst, _ := ossutils.NewObjectPath("dst.bin")

	if err := client.CopyObject(context.Background(), bucket, src, dst); err != nil {
		t.Fatal(err)
	}
}
