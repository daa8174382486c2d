package jwt

// signECDSA signs through the provider and converts its DER output to the
// fixed-width r||s wire form
func (e *Engine) signECDSA(keyPEM []byte, signingInput string, alg Algorithm) ([]byte, error) {
	orderLen, err := OrderLen(alg)
	if err != nil {
		return nil, err
	}
	der, err := e.provider.SignECDSA(keyPEM, alg.Hash(), []byte(signingInput))
	if err != nil {
		return nil, cryptoFailure(err, alg.String())
	}
	raw, err := DERToRaw(der, orderLen)
	if err != nil {
		// the provider, not the caller, produced these bytes
		return nil, cryptoFailure(err, alg.String()+": provider signature")
	}
	return raw, nil
}

// verifyECDSA converts the wire signature back to DER for the provider
func (e *Engine) verifyECDSA(keyPEM []byte, signingInput string, sig []byte, alg Algorithm) error {
	orderLen, err := OrderLen(alg)
	if err != nil {
		return err
	}
	der, err := RawToDER(sig, orderLen)
	if err != nil {
		return err
	}
	ok, err := e.provider.VerifyECDSA(keyPEM, alg.Hash(), []byte(signingInput), der)
	if err != nil {
		return cryptoFailure(err, alg.String())
	}
	if !ok {
		return invalidSignature(nil, alg.String())
	}
	return nil
}
