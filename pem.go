package jwt

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"

	"github.com/cockroachdb/errors"
)

// decodeKeyBlock returns the first PEM block that is not "EC PARAMETERS";
// openssl emits those ahead of EC keys by default.
func decodeKeyBlock(in []byte) (*pem.Block, error) {
	var block *pem.Block
	for {
		block, in = pem.Decode(in)
		if block == nil || block.Type != "EC PARAMETERS" {
			break
		}
	}
	if block == nil {
		return nil, errors.New("key must be PEM encoded")
	}
	if _, ok := block.Headers["Proc-Type"]; ok {
		return nil, errors.New("encrypted PEM keys are not supported")
	}
	return block, nil
}

// ParsePrivateKeyPEM parses an unencrypted PKCS#8, PKCS#1 or SEC 1 EC
// private key.
func ParsePrivateKeyPEM(keyPEM []byte) (crypto.Signer, error) {
	block, err := decodeKeyBlock(keyPEM)
	if err != nil {
		return nil, err
	}
	return parsePrivateKeyDER(block.Bytes)
}

func parsePrivateKeyDER(keyDER []byte) (crypto.Signer, error) {
	generalKey, err := x509.ParsePKCS8PrivateKey(keyDER)
	if err != nil {
		generalKey, err = x509.ParsePKCS1PrivateKey(keyDER)
		if err != nil {
			generalKey, err = x509.ParseECPrivateKey(keyDER)
			if err != nil {
				// the parse error is dropped so nothing about the key leaks
				return nil, errors.New("unable to parse private key")
			}
		}
	}

	switch key := generalKey.(type) {
	case *rsa.PrivateKey:
		return key, nil
	case *ecdsa.PrivateKey:
		return key, nil
	case ed25519.PrivateKey:
		return key, nil
	}
	return nil, errors.Errorf("unsupported private key: %T", generalKey)
}

// ParsePublicKeyPEM parses a PKIX or PKCS#1 public key, or takes the public
// key of an X.509 certificate or of a private key.
func ParsePublicKeyPEM(keyPEM []byte) (crypto.PublicKey, error) {
	block, err := decodeKeyBlock(keyPEM)
	if err != nil {
		return nil, err
	}

	if pub, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		return pub, nil
	}
	if pub, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return pub, nil
	}
	if crt, err := x509.ParseCertificate(block.Bytes); err == nil {
		return crt.PublicKey, nil
	}
	if pvk, err := parsePrivateKeyDER(block.Bytes); err == nil {
		return pvk.Public(), nil
	}
	return nil, errors.New("unable to parse public key")
}
