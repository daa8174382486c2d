package jwt

func (e *Engine) signRSA(keyPEM []byte, signingInput string, alg Algorithm) ([]byte, error) {
	sig, err := e.provider.SignRSA(keyPEM, alg.Hash(), []byte(signingInput))
	if err != nil {
		return nil, cryptoFailure(err, alg.String())
	}
	return sig, nil
}

func (e *Engine) verifyRSA(keyPEM []byte, signingInput string, sig []byte, alg Algorithm) error {
	ok, err := e.provider.VerifyRSA(keyPEM, alg.Hash(), []byte(signingInput), sig)
	if err != nil {
		return cryptoFailure(err, alg.String())
	}
	if !ok {
		return invalidSignature(nil, alg.String())
	}
	return nil
}
