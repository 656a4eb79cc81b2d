package ossgo

import (
	"net/http"
	"sort"
)

// PutObjectOptions represents the optional headers a caller may attach to
// a PutObject call: user metadata, standard content headers, storage
// class, and optimistic-locking conditionals. Adapted from the teacher
// SDK's PutObjectOptions/Header() builder (api-put-object.go), trimmed to
// what Aliyun OSS's plain object-write path actually uses — replication,
// server-side encryption, object-lock/legal-hold, and snowball-extract
// options from the original are out of scope here (see SPEC_FULL.md's
// Non-goals) and have been dropped rather than translated.
type PutObjectOptions struct {
	UserMetadata       map[string]string
	ContentType        string
	ContentEncoding    string
	ContentDisposition string
	ContentLanguage    string
	CacheControl       string
	StorageClass       string

	customHeaders http.Header
}

// SetMatchETag sends If-Match, so the PUT fails with a precondition error
// unless the object's current ETag matches etag, supporting
// optimistic-locking semantics.
func (opts *PutObjectOptions) SetMatchETag(etag string) {
	if opts.customHeaders == nil {
		opts.customHeaders = http.Header{}
	}
	opts.customHeaders.Set("If-Match", "\""+etag+"\"")
}

// SetMatchETagExcept sends If-None-Match, so the PUT fails with a
// precondition error if the object's current ETag matches etag.
func (opts *PutObjectOptions) SetMatchETagExcept(etag string) {
	if opts.customHeaders == nil {
		opts.customHeaders = http.Header{}
	}
	opts.customHeaders.Set("If-None-Match", "\""+etag+"\"")
}

// Header constructs the headers PutObject attaches to the request, from
// the metadata the caller set on opts.
func (opts PutObjectOptions) Header() http.Header {
	header := make(http.Header)

	contentType := opts.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	if opts.ContentEncoding != "" {
		header.Set("Content-Encoding", opts.ContentEncoding)
	}
	if opts.ContentDisposition != "" {
		header.Set("Content-Disposition", opts.ContentDisposition)
	}
	if opts.ContentLanguage != "" {
		header.Set("Content-Language", opts.ContentLanguage)
	}
	if opts.CacheControl != "" {
		header.Set("Cache-Control", opts.CacheControl)
	}
	if opts.StorageClass != "" {
		header.Set("x-oss-storage-class", opts.StorageClass)
	}

	if len(opts.UserMetadata) > 0 {
		names := make([]string, 0, len(opts.UserMetadata))
		for k := range opts.UserMetadata {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			header.Set("x-oss-meta-"+k, opts.UserMetadata[k])
		}
	}

	for k, values := range opts.customHeaders {
		for _, v := range values {
			header.Add(k, v)
		}
	}

	return header
}
