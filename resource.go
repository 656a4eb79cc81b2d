package ossgo

import (
	"net/url"
	"sort"
	"strings"

	"github.com/tu6ge/ossgo/pkg/ossutils"
)

// canonicalizedQueryWhitelist is the set of query keys that participate in
// the canonicalized resource: continuation-token, uploads, uploadId,
// partNumber, bucketInfo and acl, plus further OSS sub-resources (see
// DESIGN.md's Open Question decision on the whitelist size).
var canonicalizedQueryWhitelist = map[string]bool{
	"continuation-token": true,
	"uploads":            true,
	"uploadId":           true,
	"partNumber":         true,
	"bucketInfo":         true,
	"acl":                true,
	"objectMeta":         true,
	"lifecycle":          true,
	"location":           true,
	"referer":            true,
	"logging":            true,
	"website":            true,
	"cors":               true,
}

// BuildResource derives the CanonicalizedResource from a request URL plus
// the target bucket and object path. It is total: it never panics, and it
// produces the same bytes the server uses to validate the signature,
// per spec.md §4.2.
func BuildResource(u *url.URL, bucket ossutils.BucketName, objectPath string) CanonicalizedResource {
	var b strings.Builder
	b.WriteByte('/')

	if bucket == "" {
		// Service root: no bucket, no object. §4.2: "Empty bucket, empty
		// path -> '/'".
		return CanonicalizedResource(b.String())
	}

	b.WriteString(string(bucket))
	b.WriteByte('/')

	if objectPath != "" {
		b.WriteString(objectPath)
	}

	if u != nil {
		if suffix := canonicalizedQuerySuffix(u.Query()); suffix != "" {
			b.WriteString(suffix)
		}
	}

	return CanonicalizedResource(b.String())
}

// canonicalizedQuerySuffix renders the whitelisted subset of values as
// "?k1=v1&k2=v2" (or bare "?k1" for value-less keys such as "?bucketInfo"),
// sorted ascending by key so repeated calls over the same query are
// byte-identical.
func canonicalizedQuerySuffix(values url.Values) string {
	var keys []string
	for k := range values {
		if canonicalizedQueryWhitelist[k] {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := values.Get(k)
		if v == "" {
			parts = append(parts, k)
		} else {
			parts = append(parts, k+"="+v)
		}
	}
	return "?" + strings.Join(parts, "&")
}

// ResourceRoot is the canonicalized resource for the service root (e.g.
// ListBuckets).
func ResourceRoot() CanonicalizedResource {
	return "/"
}

// ResourceBucket is the canonicalized resource for a bare bucket, e.g.
// "/<bucket>/".
func ResourceBucket(bucket ossutils.BucketName) CanonicalizedResource {
	return CanonicalizedResource("/" + string(bucket) + "/")
}

// ResourceBucketSub adds a bucket-scoped sub-resource suffix, e.g.
// ResourceBucketSub("foo4", "bucketInfo") -> "/foo4/?bucketInfo".
func ResourceBucketSub(bucket ossutils.BucketName, subresource string) CanonicalizedResource {
	return CanonicalizedResource("/" + string(bucket) + "/?" + subresource)
}

// ResourceObject is the canonicalized resource for bucket+object, e.g.
// "/<bucket>/<key>".
func ResourceObject(bucket ossutils.BucketName, path string) CanonicalizedResource {
	return CanonicalizedResource("/" + string(bucket) + "/" + path)
}

// ResourceObjectQuery appends the whitelisted subset of query to an
// object resource, e.g. "/<bucket>/<key>?partNumber=1&uploadId=...".
func ResourceObjectQuery(bucket ossutils.BucketName, path string, query url.Values) CanonicalizedResource {
	r := "/" + string(bucket) + "/" + path
	if suffix := canonicalizedQuerySuffix(query); suffix != "" {
		r += suffix
	}
	return CanonicalizedResource(r)
}

// ResourceListing is the canonicalized resource for a ListObjects request,
// e.g. "/<bucket>/" or "/<bucket>/?continuation-token=...".
func ResourceListing(bucket ossutils.BucketName, continuationToken string) CanonicalizedResource {
	if continuationToken == "" {
		return ResourceBucket(bucket)
	}
	v := url.Values{"continuation-token": {continuationToken}}
	return CanonicalizedResource("/" + string(bucket) + "/" + canonicalizedQuerySuffix(v))
}
