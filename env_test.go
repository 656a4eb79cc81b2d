package ossgo

import (
	"testing"

	"github.com/tu6ge/ossgo/pkg/credentials"
)

func TestParseBucketBase(t *testing.T) {
	bucket, ep, err := ParseBucketBase("mybucket.oss-cn-hangzhou.aliyuncs.com")
	if err != nil {
		t.Fatal(err)
	}
	if bucket.String() != "mybucket" {
		t.Errorf("bucket = %q", bucket)
	}
	if ep.Host() != "oss-cn-hangzhou.aliyuncs.com" {
		t.Errorf("endpoint host = %q", ep.Host())
	}
}

func TestParseBucketBaseRejectsMissingDot(t *testing.T) {
	if _, _, err := ParseBucketBase("nodothere"); err == nil {
		t.Error("expected error for a domain with no '.'")
	}
}

func TestIsTruthy(t *testing.T) {
	cases := map[string]bool{
		"true": true, "1": true, "yes": true, "Y": true,
		"false": false, "0": false, "": false, "maybe": false,
	}
	for in, want := range cases {
		if got := isTruthy(in); got != want {
			t.Errorf("isTruthy(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewFromEnvRequiresCredentials(t *testing.T) {
	t.Setenv(EnvKeyID, "")
	t.Setenv(EnvKeySecret, "")
	t.Setenv(EnvEndpoint, "cn-hangzhou")
	t.Setenv(EnvBucket, "bkt")
	if _, _, err := NewFromEnv(); err == nil {
		t.Error("expected error for missing credentials")
	}
}

func TestNewFromDomain(t *testing.T) {
	creds, err := credentials.New("k", "s")
	if err != nil {
		t.Fatal(err)
	}
	client, bucket, err := NewFromDomain("mybucket.oss-cn-shanghai.aliyuncs.com", creds, nil)
	if err != nil {
		t.Fatal(err)
	}
	if client == nil || bucket.String() != "mybucket" {
		t.Errorf("unexpected result: client=%v bucket=%q", client, bucket)
	}
}

func TestNewFromEnvSuccess(t *testing.T) {
	t.Setenv(EnvKeyID, "k")
	t.Setenv(EnvKeySecret, "s")
	t.Setenv(EnvEndpoint, "cn-hangzhou")
	t.Setenv(EnvBucket, "bkt")
	t.Setenv(EnvInternal, "true")

	client, bucket, err := NewFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if client == nil {
		t.Fatal("expected non-nil client")
	}
	if bucket.String() != "bkt" {
		t.Errorf("bucket = %q", bucket)
	}
}
