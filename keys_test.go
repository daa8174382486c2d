package jwt

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secret"

type testKeyPair struct {
	rsaKey  *rsa.PrivateKey
	ecKey   *ecdsa.PrivateKey
	private []byte
	public  []byte
	pkcs8   []byte
}

var (
	testKeysOnce sync.Once
	testRSA      testKeyPair
	testEC       map[elliptic.Curve]testKeyPair
)

func loadTestKeys() {
	testKeysOnce.Do(func() {
		rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testRSA = newTestKeyPair(rsaKey)
		testRSA.rsaKey = rsaKey

		testEC = map[elliptic.Curve]testKeyPair{}
		for _, curve := range []elliptic.Curve{elliptic.P256(), elliptic.P384(), elliptic.P521()} {
			ecKey, err := ecdsa.GenerateKey(curve, rand.Reader)
			if err != nil {
				panic(err)
			}
			kp := newTestKeyPair(ecKey)
			kp.ecKey = ecKey
			testEC[curve] = kp
		}
	})
}

func newTestKeyPair(key interface{}) testKeyPair {
	var (
		kp      testKeyPair
		keyDER  []byte
		keyType string
		pub     interface{}
		err     error
	)
	switch k := key.(type) {
	case *rsa.PrivateKey:
		keyDER = x509.MarshalPKCS1PrivateKey(k)
		keyType = "RSA PRIVATE KEY"
		pub = &k.PublicKey
	case *ecdsa.PrivateKey:
		keyDER, err = x509.MarshalECPrivateKey(k)
		if err != nil {
			panic(err)
		}
		keyType = "EC PRIVATE KEY"
		pub = &k.PublicKey
	}
	kp.private = pem.EncodeToMemory(&pem.Block{Type: keyType, Bytes: keyDER})

	pubDER, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		panic(err)
	}
	kp.public = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	p8, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		panic(err)
	}
	kp.pkcs8 = pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: p8})
	return kp
}

// keysFor returns the signing and verification keys for alg
func keysFor(t testing.TB, alg Algorithm) (signKey, verifyKey []byte) {
	t.Helper()
	loadTestKeys()

	switch alg {
	case HS256, HS384, HS512:
		return []byte(testSecret), []byte(testSecret)
	case RS256, RS384, RS512:
		return testRSA.private, testRSA.public
	case ES256:
		kp := testEC[elliptic.P256()]
		return kp.private, kp.public
	case ES384:
		kp := testEC[elliptic.P384()]
		return kp.private, kp.public
	case ES512:
		kp := testEC[elliptic.P521()]
		return kp.private, kp.public
	}
	t.Fatalf("no keys for %v", alg)
	return nil, nil
}

// assertKind checks that err carries the error kind
func assertKind(t testing.TB, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	assert.Truef(t, errors.Is(err, kind), "expected %v, got: %+v", kind, err)
}
