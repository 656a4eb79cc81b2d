package ossgo

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tu6ge/ossgo/pkg/ossutils"
)

// decodeXMLTree streams r token by token, never materializing the whole
// document, and calls visit once per closed element with the full
// ancestor path (root-first) and the element's own character data.
// Grounded in the original source's decode.rs RefineObject/RefineObjectList
// token-loop, translated to a callback instead of a visitor trait since Go
// favors function values over trait objects for a single-method interface.
//
// An error returned by visit aborts decoding and is wrapped in a
// DecodeError carrying the offending element and its text, per spec.md
// §4.3 — this is how a sink-rejected value (e.g. a malformed StorageClass)
// is distinguished from a genuine XML parse error.
func decodeXMLTree(r io.Reader, visit func(path []string, text string) error) error {
	dec := xml.NewDecoder(r)
	var stack []string
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &DecodeError{Element: strings.Join(stack, "/"), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			text.Reset()
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			leaf := text.String()
			text.Reset()
			path := append([]string(nil), stack...)
			if verr := visit(path, leaf); verr != nil {
				return &DecodeError{Element: t.Name.Local, Text: leaf, Err: verr}
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

// pathEndsWith reports whether path's final elements equal suffix, in
// order. Used to match a leaf field regardless of how deep its document
// nests it.
func pathEndsWith(path []string, suffix ...string) bool {
	if len(path) < len(suffix) {
		return false
	}
	offset := len(path) - len(suffix)
	for i, s := range suffix {
		if path[offset+i] != s {
			return false
		}
	}
	return true
}

// stripETagQuotes removes the surrounding double quotes the service wraps
// every ETag in, per decode.rs's trim_matches('"').
func stripETagQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// DecodeBucketList parses a ListAllMyBucketsResult document.
func DecodeBucketList(r io.Reader) (BucketListResult, error) {
	var result BucketListResult
	var cur BucketSummary

	err := decodeXMLTree(r, func(path []string, text string) error {
		switch {
		case pathEndsWith(path, "Owner", "ID"):
			result.OwnerID = text
		case pathEndsWith(path, "Owner", "DisplayName"):
			result.OwnerDisplayName = text
		case pathEndsWith(path, "Buckets", "Bucket", "Name"):
			cur.Name = text
		case pathEndsWith(path, "Buckets", "Bucket", "CreationDate"):
			t, err := time.Parse(time.RFC3339, text)
			if err != nil {
				return err
			}
			cur.CreationDate = t
		case pathEndsWith(path, "Buckets", "Bucket", "Location"):
			cur.Location = text
		case pathEndsWith(path, "Buckets", "Bucket", "ExtranetEndpoint"):
			cur.ExtranetEndpoint = text
		case pathEndsWith(path, "Buckets", "Bucket", "IntranetEndpoint"):
			cur.IntranetEndpoint = text
		case pathEndsWith(path, "Buckets", "Bucket", "StorageClass"):
			sc, err := ossutils.ParseStorageClass(text)
			if err != nil {
				return err
			}
			cur.StorageClass = sc
		case pathEndsWith(path, "Buckets", "Bucket"):
			result.Buckets = append(result.Buckets, cur)
			cur = BucketSummary{}
		}
		return nil
	})
	if err != nil {
		return BucketListResult{}, err
	}
	return result, nil
}

// DecodeObjectsPage parses a ListBucketResult (v2) document.
func DecodeObjectsPage(r io.Reader) (ObjectsPage, error) {
	var page ObjectsPage
	var cur Object

	err := decodeXMLTree(r, func(path []string, text string) error {
		switch {
		case pathEndsWith(path, "ListBucketResult", "Name"):
			page.Name = text
		case pathEndsWith(path, "ListBucketResult", "Prefix"):
			page.Prefix = text
		case pathEndsWith(path, "ListBucketResult", "MaxKeys"):
			n, err := strconv.Atoi(text)
			if err != nil {
				return err
			}
			page.MaxKeys = n
		case pathEndsWith(path, "ListBucketResult", "KeyCount"):
			n, err := strconv.Atoi(text)
			if err != nil {
				return err
			}
			page.KeyCount = n
		case pathEndsWith(path, "ListBucketResult", "NextContinuationToken"):
			page.NextContinuationToken = text
		case pathEndsWith(path, "CommonPrefixes", "Prefix"):
			page.CommonPrefixes = append(page.CommonPrefixes, text)
		case pathEndsWith(path, "Contents", "Key"):
			cur.Path = text
		case pathEndsWith(path, "Contents", "LastModified"):
			t, err := time.Parse(time.RFC3339, text)
			if err != nil {
				return err
			}
			cur.LastModified = t
		case pathEndsWith(path, "Contents", "ETag"):
			cur.ETag = stripETagQuotes(text)
		case pathEndsWith(path, "Contents", "Type"):
			cur.Type = text
		case pathEndsWith(path, "Contents", "Size"):
			n, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return err
			}
			cur.Size = n
		case pathEndsWith(path, "Contents", "StorageClass"):
			sc, err := ossutils.ParseStorageClass(text)
			if err != nil {
				return err
			}
			cur.StorageClass = sc
		case pathEndsWith(path, "Contents"):
			page.Items = append(page.Items, cur)
			cur = Object{}
		}
		return nil
	})
	if err != nil {
		return ObjectsPage{}, err
	}
	return page, nil
}

// DecodeBucketInfo parses a BucketInfo document (the "?bucketInfo"
// sub-resource response).
func DecodeBucketInfo(r io.Reader) (BucketInfoResult, error) {
	var info BucketInfoResult

	err := decodeXMLTree(r, func(path []string, text string) error {
		switch {
		case pathEndsWith(path, "Bucket", "Name"):
			info.Name = text
		case pathEndsWith(path, "Bucket", "CreationDate"):
			t, err := time.Parse(time.RFC3339, text)
			if err != nil {
				return err
			}
			info.CreationDate = t
		case pathEndsWith(path, "Bucket", "StorageClass"):
			sc, err := ossutils.ParseStorageClass(text)
			if err != nil {
				return err
			}
			info.StorageClass = sc
		case pathEndsWith(path, "Bucket", "DataRedundancyType"):
			info.DataRedundancyType = text
		case pathEndsWith(path, "Bucket", "ExtranetEndpoint"):
			info.ExtranetEndpoint = text
		case pathEndsWith(path, "Bucket", "IntranetEndpoint"):
			info.IntranetEndpoint = text
		case pathEndsWith(path, "Bucket", "Location"):
			info.Location = text
		}
		return nil
	})
	if err != nil {
		return BucketInfoResult{}, err
	}
	return info, nil
}

// DecodeUploadID parses an InitiateMultipartUploadResult document and
// returns the UploadId field.
func DecodeUploadID(r io.Reader) (string, error) {
	var uploadID string
	err := decodeXMLTree(r, func(path []string, text string) error {
		if pathEndsWith(path, "InitiateMultipartUploadResult", "UploadId") {
			uploadID = text
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if uploadID == "" {
		return "", &ProtocolError{Missing: "UploadId"}
	}
	return uploadID, nil
}

// DecodeServiceError parses the service's <Error> document into a
// ServiceError, attaching the HTTP status supplied by the caller.
func DecodeServiceError(r io.Reader, status int) (*ServiceError, error) {
	se := &ServiceError{Status: status}
	err := decodeXMLTree(r, func(path []string, text string) error {
		switch {
		case pathEndsWith(path, "Error", "Code"):
			se.Code = text
		case pathEndsWith(path, "Error", "Message"):
			se.Message = text
		case pathEndsWith(path, "Error", "RequestId"):
			se.RequestID = text
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return se, nil
}
