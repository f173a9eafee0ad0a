package codec

import (
	"github.com/google/uuid"

	"github.com/bfastfmt/bfast/errs"
)

// uuidCanonicalToHex converts a hyphenated canonical UUID string to its
// 32-character lowercase hex wire form.
func uuidCanonicalToHex(canonical string) (string, error) {
	id, err := uuid.Parse(canonical)
	if err != nil {
		return "", errs.AtPath("", errs.ErrBadUUIDLength)
	}

	hex := make([]byte, 32)
	const hexDigits = "0123456789abcdef"
	for i, b := range id {
		hex[i*2] = hexDigits[b>>4]
		hex[i*2+1] = hexDigits[b&0x0F]
	}

	return string(hex), nil
}

// uuidHexToCanonical converts a 32-character lowercase hex UUID, as
// carried on the wire, into the canonical hyphenated form.
func uuidHexToCanonical(hex string) (string, error) {
	if len(hex) != 32 {
		return "", errs.ErrBadUUIDLength
	}

	var buf [36]byte
	pos := 0
	for i, n := range [5]int{8, 4, 4, 4, 12} {
		if i > 0 {
			buf[pos] = '-'
			pos++
		}
		copy(buf[pos:], hex[:n])
		hex = hex[n:]
		pos += n
	}

	id, err := uuid.Parse(string(buf[:]))
	if err != nil {
		return "", errs.ErrBadUUIDLength
	}

	return id.String(), nil
}
