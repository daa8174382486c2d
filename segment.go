package jwt

import (
	"sync"

	"github.com/cloudwego/base64x"
	"github.com/cockroachdb/errors"
)

// errNonCanonical is returned for a segment whose unused trailing bits are
// set, so that two different strings would decode to the same bytes
var errNonCanonical = errors.New("non-canonical base64url")

// segmentPool holds scratch buffers for base64url work; buffers never leave
// the function that borrowed them.
var segmentPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, 512)
	},
}

// EncodeSegment encodes data as unpadded base64url
func EncodeSegment(data []byte) string {
	encodeBuf := segmentPool.Get().([]byte) //nolint:errcheck // sync.Pool.Get never returns error
	origBuf := encodeBuf
	defer func() {
		segmentPool.Put(origBuf[:0]) //nolint:staticcheck // slice is converted to interface{} which is correct
	}()

	encodedLen := base64x.RawURLEncoding.EncodedLen(len(data))
	if cap(encodeBuf) < encodedLen {
		encodeBuf = make([]byte, encodedLen)
	}
	encodeBuf = encodeBuf[:encodedLen]

	base64x.RawURLEncoding.Encode(encodeBuf, data)
	return string(encodeBuf)
}

// DecodeSegment decodes an unpadded base64url segment. Only the canonical
// encoding of the result is accepted.
func DecodeSegment(encoded string) ([]byte, error) {
	decodeBuf := segmentPool.Get().([]byte) //nolint:errcheck // sync.Pool.Get never returns error
	origBuf := decodeBuf
	defer func() {
		segmentPool.Put(origBuf[:0]) //nolint:staticcheck // slice is converted to interface{} which is correct
	}()

	decodedLen := base64x.RawURLEncoding.DecodedLen(len(encoded))
	if cap(decodeBuf) < decodedLen {
		decodeBuf = make([]byte, decodedLen)
	}
	decodeBuf = decodeBuf[:decodedLen]

	n, err := base64x.RawURLEncoding.Decode(decodeBuf, []byte(encoded))
	if err != nil {
		return nil, err
	}

	result := make([]byte, n)
	copy(result, decodeBuf[:n])

	if EncodeSegment(result) != encoded {
		return nil, errNonCanonical
	}
	return result, nil
}
