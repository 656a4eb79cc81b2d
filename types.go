package ossgo

import (
	"time"

	"github.com/tu6ge/ossgo/pkg/ossutils"
)

// CanonicalizedResource is the service-specific string incorporated into
// the signature to bind a request to a specific bucket, object, and
// sub-resource. Always begins with "/".
type CanonicalizedResource string

// ContentMd5 is the Content-MD5 header value participating in the
// string-to-sign. Empty means "absent" per spec.md §4.1.
type ContentMd5 string

// ContentType is the Content-Type header value participating in the
// string-to-sign. Empty means "absent".
type ContentType string

// Date is an RFC1123/RFC822-GMT formatted timestamp, generated from the
// current wall clock at request time. See pkg/ossutils.FormatGMTDate.
type Date string

// NewDate formats t the way the signer requires.
func NewDate(t time.Time) Date {
	return Date(ossutils.FormatGMTDate(t))
}

// Object is a single listing item: one <Contents> entry from a
// ListBucketResult.
type Object struct {
	Path         string
	LastModified time.Time
	ETag         string // surrounding quotes stripped
	Type         string
	Size         int64
	StorageClass ossutils.StorageClass
}

// ObjectsPage is one page of a bucket listing.
type ObjectsPage struct {
	Name                  string
	Prefix                string
	MaxKeys               int
	KeyCount              int
	NextContinuationToken string
	CommonPrefixes        []string
	Items                 []Object
}

// HasMore reports whether the listing response declared a next page.
func (p ObjectsPage) HasMore() bool {
	return p.NextContinuationToken != ""
}

// BucketSummary is one <Bucket> entry from a ListAllMyBucketsResult.
type BucketSummary struct {
	Name              string
	CreationDate      time.Time
	Location          string
	ExtranetEndpoint  string
	IntranetEndpoint  string
	StorageClass      ossutils.StorageClass
}

// BucketListResult is the decoded ListAllMyBucketsResult document.
type BucketListResult struct {
	OwnerID          string
	OwnerDisplayName string
	Buckets          []BucketSummary
}

// BucketInfoResult is the decoded BucketInfo/Bucket document returned by
// the "?bucketInfo" sub-resource.
type BucketInfoResult struct {
	Name               string
	CreationDate       time.Time
	StorageClass       ossutils.StorageClass
	DataRedundancyType string
	ExtranetEndpoint   string
	IntranetEndpoint   string
	Location           string
}

// HeadObjectResult is the subset of a HEAD-object response this client
// surfaces.
type HeadObjectResult struct {
	LastModified time.Time
	ETag         string
	Size         int64
}
