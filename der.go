package jwt

import (
	"bytes"
	"strconv"
)

// ASN.1 tags used by ECDSA signatures
const (
	tagInteger  = 0x02
	tagSequence = 0x30
)

// maxLengthBytes is the widest long-form length accepted by DERToRaw
const maxLengthBytes = 4

// OrderLen returns the byte width of the curve group order for an ECDSA
// algorithm: 32 for ES256, 48 for ES384, 66 for ES512.
func OrderLen(alg Algorithm) (int, error) {
	switch alg {
	case ES256:
		return 32, nil
	case ES384:
		return 48, nil
	case ES512:
		return 66, nil
	default:
		return 0, unsupportedAlgorithm("no curve for algorithm " + alg.String())
	}
}

func checkOrderLen(orderLen int) error {
	switch orderLen {
	case 32, 48, 66:
		return nil
	default:
		return unsupportedAlgorithm("unsupported curve order length " + strconv.Itoa(orderLen))
	}
}

// DERToRaw converts an ASN.1 DER SEQUENCE{INTEGER r, INTEGER s} into the
// fixed-width r||s form, each half left-padded to orderLen bytes.
// Bytes following the SEQUENCE are ignored.
func DERToRaw(der []byte, orderLen int) ([]byte, error) {
	if err := checkOrderLen(orderLen); err != nil {
		return nil, err
	}

	in := derReader{buf: der}
	tag, ok := in.readByte()
	if !ok || tag != tagSequence {
		return nil, invalidSignature(nil, "der: expected SEQUENCE")
	}
	seqLen, err := in.readLength()
	if err != nil {
		return nil, err
	}
	content, ok := in.read(seqLen)
	if !ok {
		return nil, invalidSignature(nil, "der: truncated SEQUENCE")
	}

	seq := derReader{buf: content}
	raw := make([]byte, 2*orderLen)
	if err := seq.readInteger(raw[:orderLen]); err != nil {
		return nil, err
	}
	if err := seq.readInteger(raw[orderLen:]); err != nil {
		return nil, err
	}
	if !seq.empty() {
		return nil, invalidSignature(nil, "der: unexpected data after s")
	}
	return raw, nil
}

// RawToDER converts a fixed-width r||s signature of 2*orderLen bytes into
// minimal ASN.1 DER.
func RawToDER(raw []byte, orderLen int) ([]byte, error) {
	if err := checkOrderLen(orderLen); err != nil {
		return nil, err
	}
	if len(raw) != 2*orderLen {
		return nil, invalidSignature(nil, "raw signature must be "+strconv.Itoa(2*orderLen)+" bytes")
	}

	r := appendInteger(nil, raw[:orderLen])
	s := appendInteger(nil, raw[orderLen:])
	contentLen := len(r) + len(s)

	der := make([]byte, 0, 1+1+maxLengthBytes+contentLen)
	der = append(der, tagSequence)
	der = appendLength(der, contentLen)
	der = append(der, r...)
	der = append(der, s...)
	return der, nil
}

// appendInteger appends an INTEGER TLV for the unsigned big-endian value v
func appendInteger(dst, v []byte) []byte {
	v = bytes.TrimLeft(v, "\x00")
	if len(v) == 0 {
		// zero is encoded as a single 0x00 content byte
		v = []byte{0}
	}
	guard := v[0] > 0x7f

	n := len(v)
	if guard {
		n++
	}
	dst = append(dst, tagInteger)
	dst = appendLength(dst, n)
	if guard {
		dst = append(dst, 0)
	}
	return append(dst, v...)
}

// appendLength appends a definite length in short form when it fits,
// otherwise in long form with the fewest length bytes
func appendLength(dst []byte, n int) []byte {
	if n < 0x80 {
		return append(dst, byte(n))
	}
	var tmp [maxLengthBytes]byte
	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte(n)
		n >>= 8
	}
	dst = append(dst, 0x80|byte(len(tmp)-i))
	return append(dst, tmp[i:]...)
}

type derReader struct {
	buf []byte
	off int
}

func (r *derReader) empty() bool {
	return r.off >= len(r.buf)
}

func (r *derReader) readByte() (byte, bool) {
	if r.off >= len(r.buf) {
		return 0, false
	}
	b := r.buf[r.off]
	r.off++
	return b, true
}

func (r *derReader) read(n int) ([]byte, bool) {
	if n < 0 || n > len(r.buf)-r.off {
		return nil, false
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, true
}

// readLength reads a short form length, or a long form length of up to
// maxLengthBytes bytes
func (r *derReader) readLength() (int, error) {
	b, ok := r.readByte()
	if !ok {
		return 0, invalidSignature(nil, "der: truncated length")
	}
	if b < 0x80 {
		return int(b), nil
	}

	count := int(b & 0x7f)
	if count == 0 || count > maxLengthBytes {
		return 0, invalidSignature(nil, "der: unsupported length of "+strconv.Itoa(count)+" bytes")
	}
	lenBytes, ok := r.read(count)
	if !ok {
		return 0, invalidSignature(nil, "der: truncated length")
	}

	var n uint64
	for _, c := range lenBytes {
		n = n<<8 | uint64(c)
	}
	if n > uint64(len(r.buf)-r.off) {
		return 0, invalidSignature(nil, "der: length exceeds input")
	}
	return int(n), nil
}

// readInteger reads an INTEGER into dst, left-padded to len(dst). An
// integer of len(dst)+1 bytes must start with the 0x00 sign guard.
func (r *derReader) readInteger(dst []byte) error {
	orderLen := len(dst)

	tag, ok := r.readByte()
	if !ok || tag != tagInteger {
		return invalidSignature(nil, "der: expected INTEGER")
	}
	n, err := r.readLength()
	if err != nil {
		return err
	}
	if n == 0 {
		return invalidSignature(nil, "der: empty INTEGER")
	}
	if n > orderLen+1 {
		return invalidSignature(nil, "der: INTEGER longer than curve order")
	}
	v, ok := r.read(n)
	if !ok {
		return invalidSignature(nil, "der: truncated INTEGER")
	}
	if n == orderLen+1 {
		if v[0] != 0 {
			return invalidSignature(nil, "der: INTEGER overflows curve order")
		}
		v = v[1:]
	}
	copy(dst[orderLen-len(v):], v)
	return nil
}
