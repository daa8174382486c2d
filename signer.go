package jwt

// TokenSigner issues tokens with one algorithm and key (Auth Service)
type TokenSigner struct {
	engine *Engine
	alg    Algorithm
	key    []byte
}

// TokenVerifier verifies tokens with one key and an optional algorithm
// allow-list (Client Service)
type TokenVerifier struct {
	engine  *Engine
	key     []byte
	allowed [ES512 + 1]bool
}

// NewTokenSigner returns a signer using the default engine
func NewTokenSigner(alg Algorithm, key []byte) (*TokenSigner, error) {
	return defaultEngine.NewTokenSigner(alg, key)
}

// NewTokenVerifier returns a verifier using the default engine
func NewTokenVerifier(key []byte, algs ...Algorithm) (*TokenVerifier, error) {
	return defaultEngine.NewTokenVerifier(key, algs...)
}

// NewTokenSigner returns a signer for alg. The key is copied.
func (e *Engine) NewTokenSigner(alg Algorithm, key []byte) (*TokenSigner, error) {
	if !alg.Valid() {
		return nil, unsupportedAlgorithm("signer algorithm is not set")
	}
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	return &TokenSigner{
		engine: e,
		alg:    alg,
		key:    append([]byte(nil), key...),
	}, nil
}

// NewTokenVerifier returns a verifier accepting tokens signed with any of
// algs, or with any supported algorithm when algs is empty. The key is copied.
func (e *Engine) NewTokenVerifier(key []byte, algs ...Algorithm) (*TokenVerifier, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	v := &TokenVerifier{
		engine: e,
		key:    append([]byte(nil), key...),
	}
	if len(algs) == 0 {
		algs = Algorithms()
	}
	for _, alg := range algs {
		if !alg.Valid() {
			return nil, unsupportedAlgorithm("verifier algorithm " + alg.String())
		}
		v.allowed[alg] = true
	}
	return v, nil
}

// Algorithm returns the signing algorithm
func (s *TokenSigner) Algorithm() Algorithm {
	return s.alg
}

// Sign returns a signed token for claims
func (s *TokenSigner) Sign(claims ClaimSet) (string, error) {
	return s.engine.Encode(claims, s.key, s.alg)
}

// Allows reports whether tokens signed with alg are accepted
func (v *TokenVerifier) Allows(alg Algorithm) bool {
	return alg.Valid() && v.allowed[alg]
}

// Verify checks token and returns its claim
func (v *TokenVerifier) Verify(token string) (*Claim, error) {
	c := new(Claim)
	if _, err := v.VerifyInto(token, c); err != nil {
		return nil, err
	}
	return c, nil
}

// VerifyInto checks token and decodes its claims into dst
func (v *TokenVerifier) VerifyInto(token string, dst ClaimSet) (Header, error) {
	return v.engine.decode(token, v.key, dst, v.allow)
}

func (v *TokenVerifier) allow(alg Algorithm) error {
	if !v.Allows(alg) {
		return unsupportedAlgorithm("algorithm not allowed: " + alg.String())
	}
	return nil
}
