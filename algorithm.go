package jwt

import (
	"crypto"
	_ "crypto/sha256" // register SHA-256
	_ "crypto/sha512" // register SHA-384, SHA-512

	"github.com/goccy/go-json"
)

// Algorithm identifies a JWT signing algorithm (the "alg" header).
// The zero value is not a valid algorithm.
type Algorithm uint8

// Supported algorithms
const (
	HS256 Algorithm = iota + 1
	HS384
	HS512
	RS256
	RS384
	RS512
	ES256
	ES384
	ES512
)

// Family is a signature family
type Family uint8

// Signature families
const (
	FamilyHMAC Family = iota + 1
	FamilyRSA
	FamilyECDSA
)

var algorithmNames = [...]string{
	HS256: "HS256",
	HS384: "HS384",
	HS512: "HS512",
	RS256: "RS256",
	RS384: "RS384",
	RS512: "RS512",
	ES256: "ES256",
	ES384: "ES384",
	ES512: "ES512",
}

// Algorithms returns all supported algorithms in declaration order
func Algorithms() []Algorithm {
	return []Algorithm{HS256, HS384, HS512, RS256, RS384, RS512, ES256, ES384, ES512}
}

// ParseAlgorithm returns the algorithm for a header tag such as "ES256"
func ParseAlgorithm(name string) (Algorithm, error) {
	for alg := HS256; alg <= ES512; alg++ {
		if algorithmNames[alg] == name {
			return alg, nil
		}
	}
	return 0, unsupportedAlgorithm("unknown algorithm: " + name)
}

// Valid reports whether a is one of the supported algorithms
func (a Algorithm) Valid() bool {
	return a >= HS256 && a <= ES512
}

// String returns the header tag of the algorithm
func (a Algorithm) String() string {
	if !a.Valid() {
		return "unknown"
	}
	return algorithmNames[a]
}

// Family returns the signature family, or 0 for an invalid algorithm
func (a Algorithm) Family() Family {
	switch a {
	case HS256, HS384, HS512:
		return FamilyHMAC
	case RS256, RS384, RS512:
		return FamilyRSA
	case ES256, ES384, ES512:
		return FamilyECDSA
	default:
		return 0
	}
}

// Hash returns the digest used by the algorithm. The width selects the hash
// independent of the family.
func (a Algorithm) Hash() crypto.Hash {
	switch a {
	case HS256, RS256, ES256:
		return crypto.SHA256
	case HS384, RS384, ES384:
		return crypto.SHA384
	case HS512, RS512, ES512:
		return crypto.SHA512
	default:
		return 0
	}
}

// MarshalJSON encodes the algorithm as its header tag
func (a Algorithm) MarshalJSON() ([]byte, error) {
	if !a.Valid() {
		return nil, unsupportedAlgorithm("cannot marshal invalid algorithm")
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a header tag
func (a *Algorithm) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	alg, err := ParseAlgorithm(name)
	if err != nil {
		return err
	}
	*a = alg
	return nil
}
