package ossutils

import (
	"fmt"
	"net"
)

const (
	minBucketNameLen = 3
	maxBucketNameLen = 63
)

// BucketName is a validated OSS bucket name: 3..=63 lowercase
// alphanumerics/hyphens, starting and ending with a letter or digit, and
// never an IPv4 literal (mirrors S3's own bucket-naming restriction, which
// OSS shares).
type BucketName string

// NewBucketName validates s and returns it as a BucketName.
func NewBucketName(s string) (BucketName, error) {
	if len(s) < minBucketNameLen || len(s) > maxBucketNameLen {
		return "", &InvalidBucketNameError{Value: s, Reason: fmt.Sprintf("length must be %d..=%d", minBucketNameLen, maxBucketNameLen)}
	}
	if net.ParseIP(s) != nil {
		return "", &InvalidBucketNameError{Value: s, Reason: "must not be an IPv4 literal"}
	}
	if !isLowerAlnum(rune(s[0])) || !isLowerAlnum(rune(s[len(s)-1])) {
		return "", &InvalidBucketNameError{Value: s, Reason: "must start and end with a lowercase letter or digit"}
	}
	for _, c := range s {
		if !isLowerAlnum(c) && c != '-' {
			return "", &InvalidBucketNameError{Value: s, Reason: "must contain only [a-z0-9-]"}
		}
	}
	return BucketName(s), nil
}

func isLowerAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

func (b BucketName) String() string { return string(b) }

// InvalidBucketNameError reports a bucket-name invariant violation.
type InvalidBucketNameError struct {
	Value  string
	Reason string
}

func (e *InvalidBucketNameError) Error() string {
	return fmt.Sprintf("ossutils: invalid bucket name %q: %s", e.Value, e.Reason)
}
