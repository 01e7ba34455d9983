package stages

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestColumnarDecrypt(t *testing.T) {
	tests := []struct {
		name     string
		cipher   string
		keyword  string
		expected string
	}{
		{
			name:     "with space",
			cipher:   "ld ollerWHo",
			keyword:  "ZOMBIES",
			expected: "Hello World",
		},
		{
			name:     "uppercase no space",
			cipher:   "LWOLDELOHR",
			keyword:  "ZOMBIES",
			expected: "HELLOWORLD",
		},
		{
			name:     "punctuation",
			cipher:   "s . e,siath eicTsr",
			keyword:  "ZOMBIES",
			expected: "This, is a secret.",
		},
		{
			name:     "hand-computed three columns",
			cipher:   "BEADCF",
			keyword:  "BAC",
			expected: "ABCDEF",
		},
		{
			name:     "single character key is identity",
			cipher:   "CHECKTHISOUT",
			keyword:  "A",
			expected: "CHECKTHISOUT",
		},
		{
			name:     "empty input",
			cipher:   "",
			keyword:  "KEY",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColumnarDecrypt(tt.cipher, tt.keyword); got != tt.expected {
				t.Errorf("ColumnarDecrypt(%q, %q) = %q, want %q", tt.cipher, tt.keyword, got, tt.expected)
			}
		})
	}
}

// Duplicate and whitespace key characters collapse before the column
// layout is computed, so SECRET and SECRT lay out identically.
func TestColumnar_KeyDeduplication(t *testing.T) {
	plain := "MEETMEATTHEGATE"
	if got, want := ColumnarEncrypt(plain, "SECRET"), ColumnarEncrypt(plain, "SECRT"); got != want {
		t.Errorf("ColumnarEncrypt with SECRET = %q, with SECRT = %q; want equal", got, want)
	}
	if got, want := ColumnarEncrypt(plain, "AT TACK"), ColumnarEncrypt(plain, "ATCK"); got != want {
		t.Errorf("ColumnarEncrypt with 'AT TACK' = %q, with ATCK = %q; want equal", got, want)
	}
}

func TestDoubleColumnarDecrypt_SameKeyTwice(t *testing.T) {
	got := DoubleColumnarDecrypt("oHldw olelr", "ZOMBIE", "ZOMBIE")
	if got != "Hello world" {
		t.Errorf("DoubleColumnarDecrypt() = %q, want %q", got, "Hello world")
	}
}

// Property-based test: single and double columnar round-trip for
// arbitrary keys, including keys with repeated characters.
func TestColumnar_PropertyRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("columnar decrypt(encrypt(s)) == s", prop.ForAll(
		func(s, keyword string) bool {
			return ColumnarDecrypt(ColumnarEncrypt(s, keyword), keyword) == s
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("double columnar decrypt(encrypt(s)) == s", prop.ForAll(
		func(s, key1, key2 string) bool {
			return DoubleColumnarDecrypt(DoubleColumnarEncrypt(s, key1, key2), key1, key2) == s
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
