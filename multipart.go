package ossgo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tu6ge/ossgo/pkg/ossutils"
)

// Numeric policies for the multipart engine, per spec.md §6: a default
// part size tuned for the common case, a floor below which the service
// itself would reject a non-final part, a ceiling matching the service's
// per-part limit, and a hard cap on the number of parts a single upload
// may have.
const (
	DefaultPartSize = 5 * 1024 * 1024
	MinPartSize     = 100 * 1024
	MaxPartSize     = 5 * 1024 * 1024 * 1024
	MaxPartsCount   = 10000
)

// UploadState is the multipart engine's state machine position, per
// spec.md §6: Idle -> Singlepart -> Done for small bodies that never
// cross the part-size threshold, or Idle -> Initiating -> Uploading ->
// Completing -> Done for anything larger, with Uploading -> Aborting ->
// Aborted on explicit cancellation and any state -> Failed on an
// unrecoverable error (after a best-effort abort).
type UploadState int

const (
	StateIdle UploadState = iota
	StateSinglepart
	StateInitiating
	StateUploading
	StateCompleting
	StateDone
	StateAborting
	StateAborted
	StateFailed
)

func (s UploadState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSinglepart:
		return "Singlepart"
	case StateInitiating:
		return "Initiating"
	case StateUploading:
		return "Uploading"
	case StateCompleting:
		return "Completing"
	case StateDone:
		return "Done"
	case StateAborting:
		return "Aborting"
	case StateAborted:
		return "Aborted"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

type completedPart struct {
	Number int
	ETag   string
}

// MultipartUpload drives a single streaming upload: callers Write
// arbitrary-sized chunks, the engine buffers and ships a part whenever
// the buffer reaches partSize, and Flush ships the remainder and either
// completes the multipart upload or, if the whole body never reached
// partSize, falls back to one plain PUT — grounded in the original
// source's object/parts_upload.rs PartsUpload state machine, adapted from
// its buffer-then-upload method sequence to an explicit Go state enum.
type MultipartUpload struct {
	client      *Client
	bucket      ossutils.BucketName
	path        ossutils.ObjectPath
	contentType ContentType
	partSize    int64

	state    UploadState
	uploadID string
	buf      bytes.Buffer
	parts    []completedPart
}

// NewMultipartUpload constructs an upload targeting bucket/path. A
// partSize of 0 selects DefaultPartSize; any non-zero value outside
// [MinPartSize, MaxPartSize] is rejected up front.
func NewMultipartUpload(client *Client, bucket ossutils.BucketName, path ossutils.ObjectPath, contentType ContentType, partSize int64) (*MultipartUpload, error) {
	if partSize == 0 {
		partSize = DefaultPartSize
	}
	if partSize < MinPartSize || partSize > MaxPartSize {
		return nil, &MultipartError{Kind: OverflowPartSize}
	}
	return &MultipartUpload{
		client:      client,
		bucket:      bucket,
		path:        path,
		contentType: contentType,
		partSize:    partSize,
		state:       StateIdle,
	}, nil
}

// State reports the engine's current position in the state machine.
func (m *MultipartUpload) State() UploadState { return m.state }

// Write buffers p, shipping one or more parts as the buffer crosses
// partSize. It never blocks on Flush's final, possibly-undersized part.
func (m *MultipartUpload) Write(ctx context.Context, p []byte) (int, error) {
	if m.state == StateFailed || m.state == StateDone || m.state == StateAborted {
		return 0, &MultipartError{Kind: UploadAlreadyCompleted}
	}
	n, _ := m.buf.Write(p)
	for int64(m.buf.Len()) >= m.partSize {
		chunk := make([]byte, m.partSize)
		if _, err := io.ReadFull(&m.buf, chunk); err != nil {
			return n, &TransportError{Err: err}
		}
		if err := m.shipPart(ctx, chunk); err != nil {
			return n, err
		}
	}
	return n, nil
}

// shipPart initiates the multipart upload on first use, then uploads one
// numbered part.
func (m *MultipartUpload) shipPart(ctx context.Context, data []byte) error {
	if m.uploadID == "" {
		m.state = StateInitiating
		id, err := m.initiate(ctx)
		if err != nil {
			m.state = StateFailed
			return err
		}
		m.uploadID = id
		m.state = StateUploading
	}
	if len(m.parts) >= MaxPartsCount {
		m.state = StateFailed
		if abortErr := m.abortBestEffort(ctx); abortErr != nil {
			m.client.logger.Printf("ossgo: best-effort abort of upload %s failed: %v", m.uploadID, abortErr)
		}
		return &MultipartError{Kind: OverflowMaxPartsCount}
	}

	number := len(m.parts) + 1
	etag, err := m.uploadPart(ctx, number, data)
	if err != nil {
		m.state = StateFailed
		if abortErr := m.abortBestEffort(ctx); abortErr != nil {
			m.client.logger.Printf("ossgo: best-effort abort of upload %s failed: %v", m.uploadID, abortErr)
		}
		return err
	}
	m.parts = append(m.parts, completedPart{Number: number, ETag: etag})
	return nil
}

// Flush ships any buffered remainder and finalizes the upload: a single
// PUT if no part was ever shipped, otherwise a final part (if any bytes
// remain) followed by CompleteMultipartUpload.
func (m *MultipartUpload) Flush(ctx context.Context) error {
	if m.state == StateDone {
		return &MultipartError{Kind: UploadAlreadyCompleted}
	}
	if m.state == StateFailed || m.state == StateAborted {
		return &MultipartError{Kind: UploadAlreadyCompleted}
	}

	remainder := m.buf.Bytes()

	if m.uploadID == "" {
		etag, err := m.client.PutObject(ctx, m.bucket, m.path, bytes.NewReader(remainder), int64(len(remainder)), m.contentType)
		if err != nil {
			m.state = StateFailed
			return err
		}
		m.parts = append(m.parts, completedPart{Number: 1, ETag: etag})
		m.state = StateDone
		return nil
	}

	if len(remainder) > 0 {
		if err := m.shipPart(ctx, remainder); err != nil {
			return err
		}
	}

	m.state = StateCompleting
	if err := m.complete(ctx); err != nil {
		m.state = StateFailed
		return err
	}
	m.state = StateDone
	return nil
}

// Abort cancels an in-progress multipart upload, best-effort: the
// service eventually garbage-collects orphaned uploads on its own even if
// this call fails. Calling Abort before any part has been shipped (no
// upload was ever initiated) is a NoUploadId MultipartError: there is
// nothing on the service side to cancel.
func (m *MultipartUpload) Abort(ctx context.Context) error {
	if m.state == StateDone {
		return &MultipartError{Kind: UploadAlreadyCompleted}
	}
	if m.uploadID == "" {
		m.state = StateAborted
		return &MultipartError{Kind: NoUploadId}
	}
	m.state = StateAborting
	err := m.abortBestEffort(ctx)
	m.state = StateAborted
	return err
}

func (m *MultipartUpload) abortBestEffort(ctx context.Context) error {
	if m.uploadID == "" {
		return nil
	}
	q := url.Values{"uploadId": {m.uploadID}}
	resp, err := m.client.send(ctx, request{
		method:     http.MethodDelete,
		bucket:     m.bucket,
		objectPath: m.path.String(),
		query:      q,
	})
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (m *MultipartUpload) initiate(ctx context.Context) (string, error) {
	q := url.Values{"uploads": {""}}
	resp, err := m.client.sendExpectSuccess(ctx, request{
		method:      http.MethodPost,
		bucket:      m.bucket,
		objectPath:  m.path.String(),
		query:       q,
		contentType: m.contentType,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return DecodeUploadID(resp.Body)
}

func (m *MultipartUpload) uploadPart(ctx context.Context, number int, data []byte) (string, error) {
	q := url.Values{
		"partNumber": {strconv.Itoa(number)},
		"uploadId":   {m.uploadID},
	}
	resp, err := m.client.sendExpectSuccess(ctx, request{
		method:     http.MethodPut,
		bucket:     m.bucket,
		objectPath: m.path.String(),
		query:      q,
		body:       bytes.NewReader(data),
		contentLen: int64(len(data)),
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	// Kept exactly as the header returns it, quotes and all: the complete
	// request body re-emits this value verbatim, per spec.md §4.6.
	etag := resp.Header.Get("ETag")
	if etag == "" {
		return "", &ProtocolError{Missing: "ETag"}
	}
	return etag, nil
}

func (m *MultipartUpload) complete(ctx context.Context) error {
	body := completeMultipartUploadXML(m.parts)
	q := url.Values{"uploadId": {m.uploadID}}
	resp, err := m.client.sendExpectSuccess(ctx, request{
		method:      http.MethodPost,
		bucket:      m.bucket,
		objectPath:  m.path.String(),
		query:       q,
		body:        bytes.NewReader(body),
		contentLen:  int64(len(body)),
		contentType: "application/xml",
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, err = io.Copy(io.Discard, resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}
	return nil
}

// completeMultipartUploadXML renders the ascending-PartNumber request
// body CompleteMultipartUpload requires. parts is already in upload
// order (1..N), so no sort is needed here.
func completeMultipartUploadXML(parts []completedPart) []byte {
	var b bytes.Buffer
	b.WriteString("<CompleteMultipartUpload>")
	for _, p := range parts {
		fmt.Fprintf(&b, "<Part><PartNumber>%d</PartNumber><ETag>%s</ETag></Part>", p.Number, p.ETag)
	}
	b.WriteString("</CompleteMultipartUpload>")
	return b.Bytes()
}
