package plantuml

import (
	"fmt"
	"strings"
)

const sextetMask = 0x3F

// EncodedLen returns the token length for n input bytes: ceil(8n/6).
func EncodedLen(n int) (length int) {
	length = (8*n + 5) / 6
	return length
}

// Encode packs block six bits per character, most significant bits first.
// A trailing group of fewer than six bits is shifted up to fill a whole
// character. Unlike base64 no padding is ever emitted.
func Encode(block []byte, alphabet Alphabet) (token string) {
	if len(block) == 0 {
		return token
	}

	var sb strings.Builder
	sb.Grow(EncodedLen(len(block)))

	// At most 13 bits are live at once, so only the low bits are kept.
	var acc uint32
	var bits uint

	for _, b := range block {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 6 {
			bits -= 6
			sb.WriteByte(alphabet[(acc>>bits)&sextetMask])
		}
		acc &= 1<<bits - 1
	}

	if bits > 0 {
		sb.WriteByte(alphabet[(acc<<(6-bits))&sextetMask])
	}

	token = sb.String()
	return token
}

// Decode reverses Encode. A token of n characters yields floor(6n/8) bytes.
// Tokens Encode cannot produce are rejected: a length of 1 mod 4, or fill
// bits in the final character that are not zero.
func Decode(token string, alphabet Alphabet) (block []byte, err error) {
	if len(token)%4 == 1 {
		err = &EncodingError{Reason: fmt.Sprintf("invalid token length %d", len(token))}
		return block, err
	}

	table := alphabet.reverse()
	block = make([]byte, 0, len(token)*6/8)

	var acc uint32
	var bits uint

	for i := 0; i < len(token); i++ {
		v := table[token[i]]
		if v < 0 {
			err = &EncodingError{Reason: fmt.Sprintf("invalid token character %q at offset %d", token[i], i)}
			block = nil
			return block, err
		}
		acc = acc<<6 | uint32(v)
		bits += 6
		if bits >= 8 {
			bits -= 8
			block = append(block, byte(acc>>bits))
		}
		acc &= 1<<bits - 1
	}

	if acc != 0 {
		err = &EncodingError{Reason: "non-zero fill bits in final token character"}
		block = nil
		return block, err
	}

	return block, err
}
