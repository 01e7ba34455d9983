package stages

import (
	"strings"
	"unicode/utf8"
)

// RepeatingXOR applies repeating-key XOR to data. Output length equals
// input length; an empty key yields nil.
func RepeatingXOR(data, key []byte) []byte {
	if len(key) == 0 {
		return nil
	}
	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ key[i%len(key)]
	}
	return out
}

// XORKeyBytes returns the UTF-8 encoding of a dictionary key with invalid
// byte sequences dropped.
func XORKeyBytes(key string) []byte {
	if utf8.ValidString(key) {
		return []byte(key)
	}
	return []byte(strings.ToValidUTF8(key, ""))
}
