package stages

import "strings"

// CaesarDecrypt shifts each ASCII letter back by shift positions,
// preserving case. All other bytes pass through unchanged, which keeps
// the stage transparent to binary bytes produced by earlier xor rounds.
// shift is taken mod 26.
func CaesarDecrypt(text string, shift int) string {
	return caesarShift(text, -shift)
}

// CaesarEncrypt is the forward shift, the inverse of CaesarDecrypt.
func CaesarEncrypt(text string, shift int) string {
	return caesarShift(text, shift)
}

func caesarShift(text string, shift int) string {
	s := byte(((shift % 26) + 26) % 26)
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'A' && c <= 'Z':
			c = 'A' + (c-'A'+s)%26
		case c >= 'a' && c <= 'z':
			c = 'a' + (c-'a'+s)%26
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
