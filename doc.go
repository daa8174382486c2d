// Package jwt encodes, signs, decodes and verifies compact JWTs.
//
// HS256/384/512, RS256/384/512 (PKCS#1 v1.5) and ES256/384/512 are supported.
// ECDSA signatures travel as fixed-width r||s; DERToRaw and RawToDER convert
// between that form and the DER SEQUENCE produced by crypto providers.
//
// Errors carry one of the Err* kinds; match them with errors.Is from
// github.com/cockroachdb/errors.
package jwt
