package jwt

import (
	"github.com/goccy/go-json"
)

// ClaimSet is anything that can serve as a token payload.
// *Claim is one implementation; Custom wraps arbitrary structs.
type ClaimSet interface {
	// MarshalClaims returns the payload as a single JSON object
	MarshalClaims() ([]byte, error)
	// UnmarshalClaims populates the receiver from a JSON object
	UnmarshalClaims(data []byte) error
}

// ClaimsValidator is implemented by custom claim types that check themselves
// after decoding
type ClaimsValidator interface {
	Validate() error
}

// Custom adapts a JSON-serializable struct to ClaimSet
type Custom[T any] struct {
	Value T
}

// NewCustom returns a ClaimSet wrapping v
func NewCustom[T any](v T) *Custom[T] {
	return &Custom[T]{Value: v}
}

// MarshalClaims implements ClaimSet
func (c *Custom[T]) MarshalClaims() ([]byte, error) {
	js, err := json.Marshal(c.Value)
	if err != nil {
		return nil, malformedJSON(err, "marshal custom claims")
	}
	if len(js) == 0 || js[0] != '{' {
		return nil, invalidFormat(nil, "custom claims must encode as a json object")
	}
	return js, nil
}

// UnmarshalClaims implements ClaimSet. If T implements ClaimsValidator,
// Validate is called on the decoded value.
func (c *Custom[T]) UnmarshalClaims(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return malformedJSON(err, "unmarshal custom claims")
	}
	if validator, ok := any(v).(ClaimsValidator); ok {
		if err := validator.Validate(); err != nil {
			return invalidFormat(err, "custom claims")
		}
	}
	c.Value = v
	return nil
}

func encodeClaims(claims ClaimSet) (string, error) {
	js, err := claims.MarshalClaims()
	if err != nil {
		return "", err
	}
	return EncodeSegment(js), nil
}

func decodeClaims(b64 string, dst ClaimSet) error {
	js, err := DecodeSegment(b64)
	if err != nil {
		return invalidFormat(err, "decode claims")
	}
	return dst.UnmarshalClaims(js)
}
