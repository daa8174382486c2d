package jwt

import (
	"github.com/cockroachdb/errors"
)

// Error kinds returned by this package. Errors are marked with one of these
// kinds at the call site where they are produced; test for them with
// errors.Is from github.com/cockroachdb/errors, which also matches the kind
// when the cause chain carries a lower-level error.
var (
	// ErrMalformedJSON is returned when a header or claim is not valid JSON
	// or the header fields have the wrong types.
	ErrMalformedJSON = errors.New("malformed json")
	// ErrInvalidFormat is returned when a token does not split into three
	// segments, a segment is not base64url, or a claim field has the wrong type.
	ErrInvalidFormat = errors.New("invalid token format")
	// ErrUnsupportedAlgorithm is returned for an algorithm outside the closed set.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	// ErrCryptoFailure is returned when key parsing or a signing primitive fails.
	ErrCryptoFailure = errors.New("crypto failure")
	// ErrInvalidSignature is returned when a signature does not match or is
	// structurally invalid.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrEmptyKey is returned by the keyed constructors for an empty key.
	ErrEmptyKey = errors.New("key cannot be empty")
)

// markErr wraps cause with msg and marks the result with kind.
// A nil cause yields kind wrapped with msg.
func markErr(kind, cause error, msg string) error {
	if cause == nil {
		return errors.Wrap(kind, msg)
	}
	return errors.Mark(errors.Wrap(cause, msg), kind)
}

func malformedJSON(cause error, msg string) error {
	return markErr(ErrMalformedJSON, cause, msg)
}

func invalidFormat(cause error, msg string) error {
	return markErr(ErrInvalidFormat, cause, msg)
}

func unsupportedAlgorithm(msg string) error {
	return markErr(ErrUnsupportedAlgorithm, nil, msg)
}

func cryptoFailure(cause error, msg string) error {
	return markErr(ErrCryptoFailure, cause, msg)
}

func invalidSignature(cause error, msg string) error {
	return markErr(ErrInvalidSignature, cause, msg)
}
