package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/cockroachdb/errors"
	jwt "github.com/krajcik/jwtcodec"
)

// DERToRawCmd converts a DER ECDSA signature to the JWT wire form
type DERToRawCmd struct {
	Alg string `required:"" help:"ES256, ES384 or ES512"`
	Sig string `kong:"arg" required:"" help:"hex encoded DER signature"`
}

// Run the command
func (a *DERToRawCmd) Run(ctx *Cli) error {
	orderLen, in, err := signatureInput(a.Alg, a.Sig)
	if err != nil {
		return err
	}
	raw, err := jwt.DERToRaw(in, orderLen)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Writer(), hex.EncodeToString(raw))
	return nil
}

// RawToDERCmd converts a JWT wire ECDSA signature to DER
type RawToDERCmd struct {
	Alg string `required:"" help:"ES256, ES384 or ES512"`
	Sig string `kong:"arg" required:"" help:"hex encoded r||s signature"`
}

// Run the command
func (a *RawToDERCmd) Run(ctx *Cli) error {
	orderLen, in, err := signatureInput(a.Alg, a.Sig)
	if err != nil {
		return err
	}
	der, err := jwt.RawToDER(in, orderLen)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Writer(), hex.EncodeToString(der))
	return nil
}

func signatureInput(name, sig string) (int, []byte, error) {
	alg, err := jwt.ParseAlgorithm(name)
	if err != nil {
		return 0, nil, err
	}
	orderLen, err := jwt.OrderLen(alg)
	if err != nil {
		return 0, nil, err
	}
	in, err := hex.DecodeString(sig)
	if err != nil {
		return 0, nil, errors.WithMessage(err, "signature must be hex")
	}
	return orderLen, in, nil
}
