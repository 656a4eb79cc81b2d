package ossutils

import (
	"fmt"
	"strings"
)

// ObjectPath is a validated object key: non-empty, no leading '/' or '.',
// no trailing '/', no backslash. Grounded in the original source's
// ObjectPath::new (src/types/object.rs), which applies exactly these
// checks.
type ObjectPath string

// NewObjectPath validates s and returns it as an ObjectPath.
func NewObjectPath(s string) (ObjectPath, error) {
	if s == "" {
		return "", &InvalidObjectPathError{Value: s, Reason: "must not be empty"}
	}
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, ".") || strings.HasSuffix(s, "/") {
		return "", &InvalidObjectPathError{Value: s, Reason: "must not start with '/' or '.' or end with '/'"}
	}
	if strings.ContainsRune(s, '\\') {
		return "", &InvalidObjectPathError{Value: s, Reason: "must not contain '\\'"}
	}
	return ObjectPath(s), nil
}

func (p ObjectPath) String() string { return string(p) }

// ObjectDir is a validated object-key prefix that addresses a "directory":
// same rules as ObjectPath but MUST end with '/'.
type ObjectDir string

// NewObjectDir validates s and returns it as an ObjectDir.
func NewObjectDir(s string) (ObjectDir, error) {
	if s == "" {
		return "", &InvalidObjectPathError{Value: s, Reason: "must not be empty"}
	}
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, ".") || !strings.HasSuffix(s, "/") {
		return "", &InvalidObjectPathError{Value: s, Reason: "must not start with '/' or '.' and must end with '/'"}
	}
	if strings.ContainsRune(s, '\\') {
		return "", &InvalidObjectPathError{Value: s, Reason: "must not contain '\\'"}
	}
	return ObjectDir(s), nil
}

func (d ObjectDir) String() string { return string(d) }

// InvalidObjectPathError reports an object-path/object-dir invariant
// violation. Always a ValidationError: never arises from server input.
type InvalidObjectPathError struct {
	Value  string
	Reason string
}

func (e *InvalidObjectPathError) Error() string {
	return fmt.Sprintf("ossutils: invalid object path %q: %s", e.Value, e.Reason)
}
