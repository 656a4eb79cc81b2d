// Package ossgo is a client library for Aliyun OSS and other
// S3-compatible object storage services that speak its request-signing
// dialect. It provides bucket and object operations, a streaming
// multipart upload engine, and a random-access object reader, built
// around a small signed-request pipeline (Client.buildRequest / send /
// sendExpectSuccess) rather than a generated SDK surface.
//
// Credentials, bucket names, object paths, and endpoints are all
// constructor-validated value types (see pkg/credentials and
// pkg/ossutils) so a malformed value fails at the call site that created
// it, not deep inside a request.
package ossgo
