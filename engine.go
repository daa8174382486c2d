package jwt

// Engine signs and verifies signing inputs for every supported algorithm.
// An Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	provider Provider
}

var defaultEngine = NewEngine(nil)

// NewEngine returns an engine backed by p, or by StdProvider when p is nil
func NewEngine(p Provider) *Engine {
	if p == nil {
		p = StdProvider{}
	}
	return &Engine{provider: p}
}

// Sign returns the base64url signature of signingInput. key is the HMAC
// secret, or a PEM private key for RSA and ECDSA.
func (e *Engine) Sign(key []byte, signingInput string, alg Algorithm) (string, error) {
	var (
		sig []byte
		err error
	)
	switch alg.Family() {
	case FamilyHMAC:
		sig, err = e.signHMAC(key, signingInput, alg)
	case FamilyRSA:
		sig, err = e.signRSA(key, signingInput, alg)
	case FamilyECDSA:
		sig, err = e.signECDSA(key, signingInput, alg)
	default:
		return "", unsupportedAlgorithm("cannot sign with " + alg.String())
	}
	if err != nil {
		return "", err
	}
	return EncodeSegment(sig), nil
}

// Verify checks sig, the decoded signature segment, against signingInput.
// key is the HMAC secret, or a PEM public key for RSA and ECDSA.
func (e *Engine) Verify(key []byte, signingInput string, sig []byte, alg Algorithm) error {
	switch alg.Family() {
	case FamilyHMAC:
		return e.verifyHMAC(key, signingInput, sig, alg)
	case FamilyRSA:
		return e.verifyRSA(key, signingInput, sig, alg)
	case FamilyECDSA:
		return e.verifyECDSA(key, signingInput, sig, alg)
	default:
		return unsupportedAlgorithm("cannot verify with " + alg.String())
	}
}

// Sign signs signingInput with the default engine
func Sign(key []byte, signingInput string, alg Algorithm) (string, error) {
	return defaultEngine.Sign(key, signingInput, alg)
}

// Verify verifies sig with the default engine
func Verify(key []byte, signingInput string, sig []byte, alg Algorithm) error {
	return defaultEngine.Verify(key, signingInput, sig, alg)
}
