package ossgo

import (
	"fmt"
	"os"
	"strings"

	"github.com/tu6ge/ossgo/pkg/credentials"
	"github.com/tu6ge/ossgo/pkg/ossutils"
)

// Environment variable names read by NewFromEnv. Grounded in the original
// source's config.rs Config::from_env, translated to this library's own
// ALIYUN_-prefixed names.
const (
	EnvKeyID    = "ALIYUN_KEY_ID"
	EnvKeySecret = "ALIYUN_KEY_SECRET"
	EnvEndpoint  = "ALIYUN_ENDPOINT"
	EnvBucket    = "ALIYUN_BUCKET"
	EnvInternal  = "ALIYUN_OSS_INTERNAL"
)

// NewFromEnv builds a Client and resolves the default bucket from the
// ALIYUN_KEY_ID / ALIYUN_KEY_SECRET / ALIYUN_ENDPOINT / ALIYUN_BUCKET /
// ALIYUN_OSS_INTERNAL environment variables. This is a thin convenience
// wrapper, not a configuration framework: missing or invalid values are
// reported as plain errors rather than defaulted.
func NewFromEnv() (*Client, ossutils.BucketName, error) {
	creds, err := credentials.New(os.Getenv(EnvKeyID), os.Getenv(EnvKeySecret))
	if err != nil {
		return nil, "", fmt.Errorf("ossgo: %s/%s: %w", EnvKeyID, EnvKeySecret, err)
	}

	ep, err := ossutils.NewEndPoint(os.Getenv(EnvEndpoint))
	if err != nil {
		return nil, "", fmt.Errorf("ossgo: %s: %w", EnvEndpoint, err)
	}

	bucket, err := ossutils.NewBucketName(os.Getenv(EnvBucket))
	if err != nil {
		return nil, "", fmt.Errorf("ossgo: %s: %w", EnvBucket, err)
	}

	client := New(ep, creds, &Options{Internal: isTruthy(os.Getenv(EnvInternal))})
	return client, bucket, nil
}

// isTruthy parses ALIYUN_OSS_INTERNAL's value the way the original
// source's from_env does: a short, explicit allow-list rather than
// strconv.ParseBool's wider grammar.
func isTruthy(s string) bool {
	switch s {
	case "true", "1", "yes", "Y":
		return true
	default:
		return false
	}
}

// ParseBucketBase splits a bucket-and-host domain such as
// "mybucket.oss-cn-hangzhou.aliyuncs.com" into its bucket and endpoint,
// using ParseEndPointLenient for the host portion. Grounded in the
// original source's config.rs BucketBase::from_str, which the service
// itself uses when it echoes a bucket's domain back in a response
// (ExtranetEndpoint/IntranetEndpoint fields).
func ParseBucketBase(domain string) (ossutils.BucketName, ossutils.EndPoint, error) {
	host, bucketLabel, found := cutDomainBucket(domain)
	if !found {
		return "", ossutils.EndPoint{}, &ValidationError{
			Field: "domain",
			Err:   fmt.Errorf("expected '<bucket>.<host>', got %q", domain),
		}
	}
	bucket, err := ossutils.NewBucketName(bucketLabel)
	if err != nil {
		return "", ossutils.EndPoint{}, err
	}
	return bucket, ossutils.ParseEndPointLenient(host), nil
}

// NewFromDomain builds a Client and its default bucket directly from a
// virtual-hosted domain such as "mybucket.oss-cn-hangzhou.aliyuncs.com",
// using creds for signing.
func NewFromDomain(domain string, creds credentials.Credentials, opts *Options) (*Client, ossutils.BucketName, error) {
	bucket, ep, err := ParseBucketBase(domain)
	if err != nil {
		return nil, "", err
	}
	return New(ep, creds, opts), bucket, nil
}

func cutDomainBucket(domain string) (host, bucket string, found bool) {
	idx := strings.Index(domain, ".")
	if idx < 0 {
		return "", "", false
	}
	return domain[idx+1:], domain[:idx], true
}
