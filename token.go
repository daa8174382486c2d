package jwt

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// tokenParts are the raw segments of a compact token
type tokenParts struct {
	header    string
	claims    string
	signature string
	// signingInput is header "." claims exactly as received
	signingInput string
}

// Encode returns a token for claims signed with the default engine
func Encode(claims ClaimSet, key []byte, alg Algorithm) (string, error) {
	return defaultEngine.Encode(claims, key, alg)
}

// Decode verifies token with the default engine and returns its claim
func Decode(token string, key []byte) (*Claim, error) {
	return defaultEngine.Decode(token, key)
}

// DecodeInto verifies token with the default engine and decodes its claims
// into dst
func DecodeInto(token string, key []byte, dst ClaimSet) (Header, error) {
	return defaultEngine.DecodeInto(token, key, dst)
}

// Encode returns header "." claims "." signature, where the header names alg
// and the signature covers the first two segments
func (e *Engine) Encode(claims ClaimSet, key []byte, alg Algorithm) (string, error) {
	headerB64, err := EncodeHeader(alg)
	if err != nil {
		return "", err
	}
	claimsB64, err := encodeClaims(claims)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.Grow(len(headerB64) + 1 + len(claimsB64) + 1 + 176)

	builder.WriteString(headerB64)
	builder.WriteByte('.')
	builder.WriteString(claimsB64)

	signature, err := e.Sign(key, builder.String(), alg)
	if err != nil {
		return "", err
	}

	builder.WriteByte('.')
	builder.WriteString(signature)

	return builder.String(), nil
}

// Decode verifies token against key using the algorithm named in its header
// and returns the claim
func (e *Engine) Decode(token string, key []byte) (*Claim, error) {
	c := new(Claim)
	if _, err := e.decode(token, key, c, nil); err != nil {
		return nil, err
	}
	return c, nil
}

// DecodeInto is Decode for any ClaimSet
func (e *Engine) DecodeInto(token string, key []byte, dst ClaimSet) (Header, error) {
	return e.decode(token, key, dst, nil)
}

// decode runs the decode protocol; allow, when set, vets the header
// algorithm before any signature work
func (e *Engine) decode(token string, key []byte, dst ClaimSet, allow func(Algorithm) error) (Header, error) {
	parts, err := splitToken(token)
	if err != nil {
		return Header{}, err
	}

	header, err := DecodeHeader(parts.header)
	if err != nil {
		return Header{}, err
	}
	if allow != nil {
		if err := allow(header.Alg); err != nil {
			return Header{}, err
		}
	}

	if err := decodeClaims(parts.claims, dst); err != nil {
		return Header{}, err
	}

	signature, err := DecodeSegment(parts.signature)
	if err != nil {
		if errors.Is(err, errNonCanonical) {
			// an altered last character of a valid signature
			return Header{}, invalidSignature(err, "decode signature")
		}
		return Header{}, invalidFormat(err, "decode signature")
	}

	if err := e.Verify(key, parts.signingInput, signature, header.Alg); err != nil {
		return Header{}, err
	}
	return header, nil
}

// ParseUnverified decodes the header and claim of token without checking
// the signature. Use it only to inspect tokens.
func ParseUnverified(token string) (Header, *Claim, error) {
	parts, err := splitToken(token)
	if err != nil {
		return Header{}, nil, err
	}
	header, err := DecodeHeader(parts.header)
	if err != nil {
		return Header{}, nil, err
	}
	c, err := ClaimFromBase64(parts.claims)
	if err != nil {
		return Header{}, nil, err
	}
	return header, c, nil
}

// splitToken splits a token into exactly three segments
func splitToken(token string) (tokenParts, error) {
	firstDot := strings.IndexByte(token, '.')
	if firstDot == -1 {
		return tokenParts{}, invalidFormat(nil, "token has 1 segment")
	}

	secondDot := strings.IndexByte(token[firstDot+1:], '.')
	if secondDot == -1 {
		return tokenParts{}, invalidFormat(nil, "token has 2 segments")
	}
	secondDot += firstDot + 1

	if strings.IndexByte(token[secondDot+1:], '.') != -1 {
		return tokenParts{}, invalidFormat(nil, "token has more than 3 segments")
	}

	return tokenParts{
		header:       token[:firstDot],
		claims:       token[firstDot+1 : secondDot],
		signature:    token[secondDot+1:],
		signingInput: token[:secondDot],
	}, nil
}
