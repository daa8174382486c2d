package jwt

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"

	"github.com/cockroachdb/errors"
)

// Provider performs the cryptographic primitives behind the engine.
// Keys are passed as PEM (RSA, ECDSA) or as raw secret bytes (HMAC).
type Provider interface {
	// HMAC returns HMAC(h, key, data)
	HMAC(h crypto.Hash, key, data []byte) ([]byte, error)
	// SignRSA returns a PKCS#1 v1.5 signature over data
	SignRSA(keyPEM []byte, h crypto.Hash, data []byte) ([]byte, error)
	// VerifyRSA reports whether sig is a PKCS#1 v1.5 signature over data
	VerifyRSA(keyPEM []byte, h crypto.Hash, data, sig []byte) (bool, error)
	// SignECDSA returns an ASN.1 DER signature over data
	SignECDSA(keyPEM []byte, h crypto.Hash, data []byte) ([]byte, error)
	// VerifyECDSA reports whether der is an ASN.1 DER signature over data
	VerifyECDSA(keyPEM []byte, h crypto.Hash, data, der []byte) (bool, error)
}

// StdProvider implements Provider with the Go standard crypto packages
type StdProvider struct{}

var _ Provider = StdProvider{}

// HMAC implements Provider
func (StdProvider) HMAC(h crypto.Hash, key, data []byte) ([]byte, error) {
	if !h.Available() {
		return nil, errors.Errorf("hash not available: %v", h)
	}
	mac := hmac.New(h.New, key)
	mac.Write(data)
	return mac.Sum(nil), nil
}

// SignRSA implements Provider
func (StdProvider) SignRSA(keyPEM []byte, h crypto.Hash, data []byte) ([]byte, error) {
	pvk, err := ParsePrivateKeyPEM(keyPEM)
	if err != nil {
		return nil, err
	}
	key, ok := pvk.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.Errorf("invalid key type for RSA signature: %T", pvk)
	}
	digest, err := hashData(h, data)
	if err != nil {
		return nil, err
	}
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, h, digest)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return sig, nil
}

// VerifyRSA implements Provider
func (StdProvider) VerifyRSA(keyPEM []byte, h crypto.Hash, data, sig []byte) (bool, error) {
	pub, err := ParsePublicKeyPEM(keyPEM)
	if err != nil {
		return false, err
	}
	key, ok := pub.(*rsa.PublicKey)
	if !ok {
		return false, errors.Errorf("invalid key type for RSA signature: %T", pub)
	}
	digest, err := hashData(h, data)
	if err != nil {
		return false, err
	}
	return rsa.VerifyPKCS1v15(key, h, digest, sig) == nil, nil
}

// SignECDSA implements Provider
func (StdProvider) SignECDSA(keyPEM []byte, h crypto.Hash, data []byte) ([]byte, error) {
	pvk, err := ParsePrivateKeyPEM(keyPEM)
	if err != nil {
		return nil, err
	}
	key, ok := pvk.(*ecdsa.PrivateKey)
	if !ok {
		return nil, errors.Errorf("invalid key type for ECDSA signature: %T", pvk)
	}
	if err := checkCurve(key.Curve, h); err != nil {
		return nil, err
	}
	digest, err := hashData(h, data)
	if err != nil {
		return nil, err
	}
	der, err := ecdsa.SignASN1(rand.Reader, key, digest)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return der, nil
}

// VerifyECDSA implements Provider
func (StdProvider) VerifyECDSA(keyPEM []byte, h crypto.Hash, data, der []byte) (bool, error) {
	pub, err := ParsePublicKeyPEM(keyPEM)
	if err != nil {
		return false, err
	}
	key, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		return false, errors.Errorf("invalid key type for ECDSA signature: %T", pub)
	}
	if err := checkCurve(key.Curve, h); err != nil {
		return false, err
	}
	digest, err := hashData(h, data)
	if err != nil {
		return false, err
	}
	return ecdsa.VerifyASN1(key, digest, der), nil
}

func hashData(h crypto.Hash, data []byte) ([]byte, error) {
	if !h.Available() {
		return nil, errors.Errorf("hash not available: %v", h)
	}
	hasher := h.New()
	hasher.Write(data)
	return hasher.Sum(nil), nil
}

// checkCurve pins each hash to its JWS curve: SHA-256 to P-256, SHA-384 to
// P-384, SHA-512 to P-521
func checkCurve(curve elliptic.Curve, h crypto.Hash) error {
	var want elliptic.Curve
	switch h {
	case crypto.SHA256:
		want = elliptic.P256()
	case crypto.SHA384:
		want = elliptic.P384()
	case crypto.SHA512:
		want = elliptic.P521()
	default:
		return errors.Errorf("no curve for hash %v", h)
	}
	if curve != want {
		return errors.Errorf("curve %s does not match %v", curve.Params().Name, h)
	}
	return nil
}
