package itseasy

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidAttribute = "invalid_attribute"
	CodePathNotFound     = "path_not_found"
	CodeEncodeFailure    = "encode_failure"
	CodeDecodeFailure    = "decode_failure"
	CodeValueError       = "value_error"
)

// Sentinel errors matched by Issues.Is through the issue code.
var (
	ErrInvalidAttribute = errors.New("itseasy: invalid attribute")
	ErrPathNotFound     = errors.New("itseasy: path not found")
	ErrEncodeFailure    = errors.New("itseasy: encode failure")
	ErrDecodeFailure    = errors.New("itseasy: decode failure")
	ErrValue            = errors.New("itseasy: value error")
)

var sentinelByCode = map[string]error{
	CodeInvalidAttribute: ErrInvalidAttribute,
	CodePathNotFound:     ErrPathNotFound,
	CodeEncodeFailure:    ErrEncodeFailure,
	CodeDecodeFailure:    ErrDecodeFailure,
	CodeValueError:       ErrValue,
}

// Issue represents a single failure entry.
type Issue struct {
	Path    string // Attribute name or query path (for example: data.[0].name).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. path_not_found at a.b: unresolved segment "b"
		fmt.Fprintf(b, "%s", it.Code)
		if it.Path != "" {
			fmt.Fprintf(b, " at %s", it.Path)
		}
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports whether any issue carries the code that target stands for.
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		if s, ok := sentinelByCode[it.Code]; ok && s == target {
			return true
		}
	}
	return false
}

// Unwrap exposes the underlying causes.
func (iss Issues) Unwrap() []error {
	var causes []error
	for _, it := range iss {
		if it.Cause != nil {
			causes = append(causes, it.Cause)
		}
	}
	return causes
}

// NewIssue returns a single-issue error.
func NewIssue(code, path, msg string) Issues {
	return Issues{{Path: path, Code: code, Message: msg}}
}

// WrapIssue returns a single-issue error carrying cause.
func WrapIssue(code, path string, cause error) Issues {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return Issues{{Path: path, Code: code, Message: msg, Cause: cause}}
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
