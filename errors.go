package ossgo

import "fmt"

// ValidationError reports an invariant violation in a caller-supplied
// value object (bucket name, endpoint, object path, storage class, ...).
// Never arises from server input.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ossgo: validation error on %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// SignErrorKind enumerates the reasons signing can fail.
type SignErrorKind int

const (
	// InvalidSecretLength means HMAC rejected the key (hmac.New panics on
	// nothing here, but a zero-length secret is still rejected up front).
	InvalidSecretLength SignErrorKind = iota
	// InvalidHeaderValue means a computed header is not a valid HTTP
	// header value per golang.org/x/net/http/httpguts.
	InvalidHeaderValue
)

func (k SignErrorKind) String() string {
	switch k {
	case InvalidSecretLength:
		return "InvalidSecretLength"
	case InvalidHeaderValue:
		return "InvalidHeaderValue"
	default:
		return "Unknown"
	}
}

// SignError reports why the signer could not produce an Authorization
// header.
type SignError struct {
	Kind   SignErrorKind
	Detail string
}

func (e *SignError) Error() string {
	return fmt.Sprintf("ossgo: sign error (%s): %s", e.Kind, e.Detail)
}

// TransportError wraps the underlying HTTP client's error. Callers may
// treat it as potentially retryable; the core never retries automatically.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ossgo: transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is a non-success HTTP response whose body is the service's
// XML error document. Codes are passed through verbatim (NoSuchKey,
// AccessDenied, RequestTimeTooSkewed, ...).
type ServiceError struct {
	Code      string
	Status    int
	Message   string
	RequestID string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ossgo: service error %s (status %d, request id %s): %s", e.Code, e.Status, e.RequestID, e.Message)
}

// DecodeError is an XML parse failure or a sink-rejected value, with the
// original element text attached for diagnostics per spec.md §4.3.
type DecodeError struct {
	Element string
	Text    string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ossgo: decode error in <%s>%s</%s>: %v", e.Element, e.Text, e.Element, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ProtocolError is a successful HTTP response that omits a required
// header or field (missing ETag, missing UploadId, missing Content-Length
// on HeadObject, ...).
type ProtocolError struct {
	Missing string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("ossgo: protocol error: missing %s", e.Missing)
}

// MultipartErrorKind enumerates multipart-engine-specific failures.
type MultipartErrorKind int

const (
	OverflowPartSize MultipartErrorKind = iota
	OverflowMaxPartsCount
	NoUploadId
	UploadAlreadyCompleted
)

func (k MultipartErrorKind) String() string {
	switch k {
	case OverflowPartSize:
		return "OverflowPartSize"
	case OverflowMaxPartsCount:
		return "OverflowMaxPartsCount"
	case NoUploadId:
		return "NoUploadId"
	case UploadAlreadyCompleted:
		return "UploadAlreadyCompleted"
	default:
		return "Unknown"
	}
}

// MultipartError reports a violation of the multipart engine's state
// machine or numeric policies.
type MultipartError struct {
	Kind MultipartErrorKind
}

func (e *MultipartError) Error() string {
	return fmt.Sprintf("ossgo: multipart error: %s", e.Kind)
}
