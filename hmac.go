package jwt

import (
	"crypto/hmac"
)

func (e *Engine) signHMAC(secret []byte, signingInput string, alg Algorithm) ([]byte, error) {
	mac, err := e.provider.HMAC(alg.Hash(), secret, []byte(signingInput))
	if err != nil {
		return nil, cryptoFailure(err, alg.String())
	}
	return mac, nil
}

// verifyHMAC recomputes the MAC and compares raw bytes in constant time
func (e *Engine) verifyHMAC(secret []byte, signingInput string, sig []byte, alg Algorithm) error {
	expected, err := e.provider.HMAC(alg.Hash(), secret, []byte(signingInput))
	if err != nil {
		return cryptoFailure(err, alg.String())
	}
	if !hmac.Equal(sig, expected) {
		return invalidSignature(nil, alg.String())
	}
	return nil
}
