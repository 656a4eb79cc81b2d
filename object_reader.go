package ossgo

import (
	"context"
	"errors"
	"io"

	"github.com/tu6ge/ossgo/pkg/ossutils"
)

var (
	errUnknownSize      = errors.New("object size unknown, cannot seek relative to end")
	errInvalidWhence    = errors.New("invalid whence")
	errNegativePosition = errors.New("resulting position is negative")
)

// ObjectReader is a random-access io.ReadSeeker over a remote object: each
// Read issues a fresh ranged GET starting at the current logical
// position, and Seek only updates that position without any I/O.
// Grounded in spec.md §7's read-side contract, the GetObjectRange
// operation it is built on is grounded in the teacher SDK's PutObjectOptions
// Header()-style request construction (api-put-object.go).
type ObjectReader struct {
	client *Client
	bucket ossutils.BucketName
	path   ossutils.ObjectPath
	size   int64 // total object size, -1 if unknown
	pos    int64
}

// NewObjectReader returns an ObjectReader over bucket/path. size is the
// object's total length if known (e.g. from a prior HeadObject); pass -1
// if unknown, in which case Seek(io.SeekEnd) will fail.
func NewObjectReader(client *Client, bucket ossutils.BucketName, path ossutils.ObjectPath, size int64) *ObjectReader {
	return &ObjectReader{client: client, bucket: bucket, path: path, size: size}
}

// ReadAt issues one ranged GET covering len(p) bytes starting at off,
// filling p with however much the service returned.
func (r *ObjectReader) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	body, err := r.client.GetObjectRange(ctx, r.bucket, r.path, off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer body.Close()
	n, err := io.ReadFull(body, p)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		err = nil
	}
	return n, err
}

// Read implements io.Reader by issuing a ranged GET at the current
// position and advancing it by however many bytes it returns.
func (r *ObjectReader) Read(p []byte) (int, error) {
	n, err := r.ReadAt(context.Background(), p, r.pos)
	r.pos += int64(n)
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}

// Seek updates the logical read position without performing any I/O.
func (r *ObjectReader) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = r.pos + offset
	case io.SeekEnd:
		if r.size < 0 {
			return 0, &ValidationError{Field: "whence", Err: errUnknownSize}
		}
		newPos = r.size + offset
	default:
		return 0, &ValidationError{Field: "whence", Err: errInvalidWhence}
	}
	if newPos < 0 {
		return 0, &ValidationError{Field: "offset", Err: errNegativePosition}
	}
	r.pos = newPos
	return r.pos, nil
}
