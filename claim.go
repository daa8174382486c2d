package jwt

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// Registered claim names
const (
	ClaimIssuer    = "iss"
	ClaimSubject   = "sub"
	ClaimAudience  = "aud"
	ClaimExpiresAt = "exp"
	ClaimNotBefore = "nbf"
	ClaimIssuedAt  = "iat"
	ClaimJwtID     = "jti"
)

// RegisteredClaims holds the registered claim fields. A nil field is absent.
type RegisteredClaims struct {
	Issuer    *string
	Subject   *string
	Audience  *string
	ExpiresAt *uint64
	NotBefore *uint64
	IssuedAt  *uint64
	JwtID     *string
}

// Claim is a registered claim record plus extension fields.
// Registered names take precedence over extension fields of the same name.
type Claim struct {
	Registered RegisteredClaims
	// Extra holds extension fields as decoded JSON values;
	// numbers are json.Number. It is nil when there are none.
	Extra map[string]any
}

// NewClaim returns an empty claim
func NewClaim() *Claim {
	return &Claim{}
}

// SetIssuer sets "iss"
func (c *Claim) SetIssuer(v string) *Claim {
	c.Registered.Issuer = &v
	return c
}

// SetSubject sets "sub"
func (c *Claim) SetSubject(v string) *Claim {
	c.Registered.Subject = &v
	return c
}

// SetAudience sets "aud"
func (c *Claim) SetAudience(v string) *Claim {
	c.Registered.Audience = &v
	return c
}

// SetJwtID sets "jti"
func (c *Claim) SetJwtID(v string) *Claim {
	c.Registered.JwtID = &v
	return c
}

// SetExpiresAt sets "exp"
func (c *Claim) SetExpiresAt(v uint64) *Claim {
	c.Registered.ExpiresAt = &v
	return c
}

// SetNotBefore sets "nbf"
func (c *Claim) SetNotBefore(v uint64) *Claim {
	c.Registered.NotBefore = &v
	return c
}

// SetIssuedAt sets "iat"
func (c *Claim) SetIssuedAt(v uint64) *Claim {
	c.Registered.IssuedAt = &v
	return c
}

// Set stores an extension field. The value is normalized through JSON, so
// Set("n", 12) stores json.Number("12"), the same value a decode yields.
func (c *Claim) Set(key string, value any) error {
	js, err := json.Marshal(value)
	if err != nil {
		return malformedJSON(err, "marshal claim field "+key)
	}
	v, err := decodeValue(js)
	if err != nil {
		return malformedJSON(err, "normalize claim field "+key)
	}
	if c.Extra == nil {
		c.Extra = map[string]any{}
	}
	c.Extra[key] = v
	return nil
}

// Get returns an extension field
func (c *Claim) Get(key string) (any, bool) {
	v, ok := c.Extra[key]
	return v, ok
}

// MarshalClaims returns the single JSON object of extension and registered
// fields
func (c *Claim) MarshalClaims() ([]byte, error) {
	obj := make(map[string]any, len(c.Extra)+7)
	for k, v := range c.Extra {
		obj[k] = v
	}

	r := &c.Registered
	putString(obj, ClaimIssuer, r.Issuer)
	putString(obj, ClaimSubject, r.Subject)
	putString(obj, ClaimAudience, r.Audience)
	putString(obj, ClaimJwtID, r.JwtID)
	putUint(obj, ClaimExpiresAt, r.ExpiresAt)
	putUint(obj, ClaimNotBefore, r.NotBefore)
	putUint(obj, ClaimIssuedAt, r.IssuedAt)

	js, err := json.Marshal(obj)
	if err != nil {
		return nil, malformedJSON(err, "marshal claims")
	}
	return js, nil
}

// UnmarshalClaims replaces c with the claim decoded from a JSON object
func (c *Claim) UnmarshalClaims(data []byte) error {
	if !json.Valid(data) {
		return malformedJSON(nil, "claims are not valid json")
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return invalidFormat(nil, "claims are not a json object")
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return malformedJSON(err, "unmarshal claims")
	}

	var reg RegisteredClaims
	var err error
	if reg.Issuer, err = takeString(obj, ClaimIssuer); err != nil {
		return err
	}
	if reg.Subject, err = takeString(obj, ClaimSubject); err != nil {
		return err
	}
	if reg.Audience, err = takeString(obj, ClaimAudience); err != nil {
		return err
	}
	if reg.JwtID, err = takeString(obj, ClaimJwtID); err != nil {
		return err
	}
	if reg.ExpiresAt, err = takeUint(obj, ClaimExpiresAt); err != nil {
		return err
	}
	if reg.NotBefore, err = takeUint(obj, ClaimNotBefore); err != nil {
		return err
	}
	if reg.IssuedAt, err = takeUint(obj, ClaimIssuedAt); err != nil {
		return err
	}

	var extra map[string]any
	if len(obj) > 0 {
		extra = make(map[string]any, len(obj))
	}
	for k, raw := range obj {
		v, err := decodeValue(raw)
		if err != nil {
			return malformedJSON(err, "claim field "+k)
		}
		extra[k] = v
	}

	c.Registered = reg
	c.Extra = extra
	return nil
}

// ToBase64 returns the base64url encoded claims
func (c *Claim) ToBase64() (string, error) {
	js, err := c.MarshalClaims()
	if err != nil {
		return "", err
	}
	return EncodeSegment(js), nil
}

// ClaimFromBase64 decodes base64url encoded claims
func ClaimFromBase64(b64 string) (*Claim, error) {
	js, err := DecodeSegment(b64)
	if err != nil {
		return nil, invalidFormat(err, "decode claims")
	}
	c := new(Claim)
	if err := c.UnmarshalClaims(js); err != nil {
		return nil, err
	}
	return c, nil
}

func putString(obj map[string]any, key string, v *string) {
	if v != nil {
		obj[key] = *v
	}
}

func putUint(obj map[string]any, key string, v *uint64) {
	if v != nil {
		obj[key] = *v
	}
}

// takeString removes key from obj; the value must be a string or null
func takeString(obj map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := obj[key]
	if !ok {
		return nil, nil
	}
	delete(obj, key)
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return nil, nil
	}
	if raw[0] != '"' {
		return nil, invalidFormat(nil, "claim "+key+" must be a string")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, invalidFormat(err, "claim "+key)
	}
	return &s, nil
}

// takeUint removes key from obj; the value must be an unsigned 64-bit
// integer or null
func takeUint(obj map[string]json.RawMessage, key string) (*uint64, error) {
	raw, ok := obj[key]
	if !ok {
		return nil, nil
	}
	delete(obj, key)
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return nil, nil
	}
	u, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return nil, invalidFormat(err, "claim "+key+" must be an unsigned integer")
	}
	return &u, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// decodeValue decodes one JSON value keeping numbers as json.Number
func decodeValue(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
