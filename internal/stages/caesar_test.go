package stages

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCaesarDecrypt(t *testing.T) {
	tests := []struct {
		name     string
		cipher   string
		shift    int
		expected string
	}{
		{
			name:     "hello world shift 3",
			cipher:   "KHOOR ZRUOG",
			shift:    3,
			expected: "HELLO WORLD",
		},
		{
			name:     "hello world rot13",
			cipher:   "URYYB JBEYQ",
			shift:    13,
			expected: "HELLO WORLD",
		},
		{
			name:     "uppercase shift 7",
			cipher:   "DL HAAHJR HA KHDU",
			shift:    7,
			expected: "WE ATTACK AT DAWN",
		},
		{
			name:     "mixed case preserved",
			cipher:   "Aopz pz h tlzzhnl",
			shift:    7,
			expected: "This is a message",
		},
		{
			name:     "punctuation passes through",
			cipher:   "Dvd, h zljyla tlzzhnl",
			shift:    7,
			expected: "Wow, a secret message",
		},
		{
			name:     "shift zero is identity",
			cipher:   "UNCHANGED",
			shift:    0,
			expected: "UNCHANGED",
		},
		{
			name:     "wraps around alphabet",
			cipher:   "ABC",
			shift:    3,
			expected: "XYZ",
		},
		{
			name:     "empty input",
			cipher:   "",
			shift:    5,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CaesarDecrypt(tt.cipher, tt.shift); got != tt.expected {
				t.Errorf("CaesarDecrypt(%q, %d) = %q, want %q", tt.cipher, tt.shift, got, tt.expected)
			}
		})
	}
}

func TestCaesarEncrypt_Wraps(t *testing.T) {
	if got := CaesarEncrypt("XYZ", 3); got != "ABC" {
		t.Errorf("CaesarEncrypt(XYZ, 3) = %q, want ABC", got)
	}
	if got := CaesarEncrypt("xyz", 3); got != "abc" {
		t.Errorf("CaesarEncrypt(xyz, 3) = %q, want abc", got)
	}
}

// Property-based test: decrypt inverts encrypt for every byte, not just
// letters, for every shift.
func TestCaesar_PropertyRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("decrypt(encrypt(s)) == s", prop.ForAll(
		func(s string, shift int) bool {
			return CaesarDecrypt(CaesarEncrypt(s, shift), shift) == s
		},
		gen.AnyString(),
		gen.IntRange(0, 25),
	))

	properties.TestingRun(t)
}
