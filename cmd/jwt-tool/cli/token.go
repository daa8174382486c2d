package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	jwt "github.com/krajcik/jwtcodec"
)

// SignCmd signs claims
type SignCmd struct {
	Alg    string `help:"signing algorithm, such as HS256 or ES384" env:"JWT_ALG"`
	Key    string `help:"PEM private key file for RS* and ES*" env:"JWT_KEY"`
	Secret string `help:"HMAC secret for HS*" env:"JWT_SECRET"`
	Claims string `help:"claims JSON file, - for stdin; empty claims when not set"`
}

// Run the command
func (a *SignCmd) Run(ctx *Cli) error {
	name := a.Alg
	if name == "" {
		name = ctx.Cfg().Alg
	}
	if name == "" {
		return errors.New("--alg is required")
	}
	alg, err := jwt.ParseAlgorithm(name)
	if err != nil {
		return err
	}

	key, err := ctx.readKey(a.Key, a.Secret)
	if err != nil {
		return err
	}

	claims := jwt.NewClaim()
	if a.Claims != "" {
		js, err := ctx.ReadFile(a.Claims)
		if err != nil {
			return errors.WithMessage(err, "unable to load claims")
		}
		if err := claims.UnmarshalClaims(js); err != nil {
			return errors.WithMessage(err, "unable to parse claims")
		}
	}

	signer, err := jwt.NewTokenSigner(alg, key)
	if err != nil {
		return err
	}
	token, err := signer.Sign(claims)
	if err != nil {
		return errors.WithMessage(err, "unable to sign")
	}
	logger.KV(xlog.DEBUG, "alg", alg, "extra", len(claims.Extra))

	fmt.Fprintln(ctx.Writer(), token)
	return nil
}

// VerifyCmd verifies a token and prints its claims
type VerifyCmd struct {
	Token  string   `kong:"arg" required:"" help:"token to verify"`
	Alg    []string `help:"allowed algorithms; all when not set"`
	Key    string   `help:"PEM public key file for RS* and ES*" env:"JWT_KEY"`
	Secret string   `help:"HMAC secret for HS*" env:"JWT_SECRET"`
}

// Run the command
func (a *VerifyCmd) Run(ctx *Cli) error {
	names := a.Alg
	if len(names) == 0 {
		names = ctx.Cfg().Algorithms
	}
	algs, err := parseAlgorithms(names)
	if err != nil {
		return err
	}

	key, err := ctx.readKey(a.Key, a.Secret)
	if err != nil {
		return err
	}

	verifier, err := jwt.NewTokenVerifier(key, algs...)
	if err != nil {
		return err
	}
	claims, err := verifier.Verify(a.Token)
	if err != nil {
		return errors.WithMessage(err, "token is not valid")
	}
	logger.KV(xlog.DEBUG, "verified", true, "allowed", names)

	obj, err := claimObject(claims)
	if err != nil {
		return err
	}
	return ctx.WriteJSON(obj)
}

// InspectCmd prints a token without verifying it
type InspectCmd struct {
	Token string `kong:"arg" required:"" help:"token to inspect"`
}

// Run the command
func (a *InspectCmd) Run(ctx *Cli) error {
	header, claims, err := jwt.ParseUnverified(a.Token)
	if err != nil {
		return errors.WithMessage(err, "unable to parse token")
	}

	obj, err := claimObject(claims)
	if err != nil {
		return err
	}
	return ctx.WriteJSON(map[string]interface{}{
		"header": header,
		"claims": obj,
	})
}
