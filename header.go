package jwt

import (
	"bytes"

	"github.com/goccy/go-json"
)

// TypeJWT is the only "typ" value this package emits
const TypeJWT = "JWT"

// Header is the JOSE header of a token.
// Field order is fixed so the same header always encodes to the same bytes.
type Header struct {
	Alg Algorithm `json:"alg"`
	Typ string    `json:"typ"`
}

// NewHeader returns the header for alg
func NewHeader(alg Algorithm) Header {
	return Header{Alg: alg, Typ: TypeJWT}
}

// ToBase64 returns the base64url encoded JSON header
func (h Header) ToBase64() (string, error) {
	if !h.Alg.Valid() {
		return "", unsupportedAlgorithm("header algorithm is not set")
	}
	js, err := json.Marshal(h)
	if err != nil {
		return "", malformedJSON(err, "marshal header")
	}
	return EncodeSegment(js), nil
}

// EncodeHeader returns the base64url encoded header for alg
func EncodeHeader(alg Algorithm) (string, error) {
	return NewHeader(alg).ToBase64()
}

// DecodeHeader parses a base64url encoded header. The "alg" and "typ" keys
// must match exactly; unknown fields are ignored.
func DecodeHeader(b64 string) (Header, error) {
	js, err := DecodeSegment(b64)
	if err != nil {
		return Header{}, malformedJSON(err, "decode header")
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(js, &obj); err != nil {
		return Header{}, malformedJSON(err, "unmarshal header")
	}

	name, err := headerString(obj, "alg")
	if err != nil {
		return Header{}, err
	}
	typ, err := headerString(obj, "typ")
	if err != nil {
		return Header{}, err
	}

	alg, err := ParseAlgorithm(name)
	if err != nil {
		return Header{}, malformedJSON(err, "header alg")
	}
	return Header{Alg: alg, Typ: typ}, nil
}

// headerString returns the string value of key, which must be present
func headerString(obj map[string]json.RawMessage, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", malformedJSON(nil, "header has no "+key)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", malformedJSON(nil, "header "+key+" must be a string")
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", malformedJSON(err, "header "+key)
	}
	return v, nil
}
