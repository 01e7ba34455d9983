package stages

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestBuildKeyedSquare(t *testing.T) {
	t.Run("standard alphabet", func(t *testing.T) {
		square := BuildKeyedSquare(StandardAlphabet, "ZOMBIE")
		if square != "ZOMBIEACDFGHKLNPQRSTUVWXY" {
			t.Errorf("square = %q, want ZOMBIEACDFGHKLNPQRSTUVWXY", square)
		}
		if len(square) != 25 {
			t.Errorf("len(square) = %d, want 25", len(square))
		}
	})

	t.Run("base64 alphabet", func(t *testing.T) {
		square := BuildKeyedSquare(Base64Alphabet, "SECRET")
		if !strings.HasPrefix(square, "SECRT") {
			t.Errorf("square = %q, want SECRT prefix (key chars, no duplicates)", square)
		}
		if len(square) != 64 {
			t.Errorf("len(square) = %d, want 64", len(square))
		}
		if strings.Count(square, "S") != 1 {
			t.Errorf("square contains duplicate S")
		}
	})

	t.Run("key characters outside alphabet are skipped", func(t *testing.T) {
		square := BuildKeyedSquare(StandardAlphabet, "JAZZ9!")
		// J is not in the standard alphabet; digits and punctuation are not
		// either.
		if !strings.HasPrefix(square, "AZ") {
			t.Errorf("square = %q, want AZ prefix", square)
		}
		if len(square) != 25 {
			t.Errorf("len(square) = %d, want 25", len(square))
		}
	})
}

func TestBifidDecrypt_Standard(t *testing.T) {
	// Non-alphabet characters (spaces, digits, punctuation) are stripped
	// and not reinserted.
	got := BifidDecrypt("RCV QHRAD VOX 99 HAQOS!", "ZOMBIE", StandardAlphabet)
	if got != "THEHYDRAHASHEADS" {
		t.Errorf("BifidDecrypt() = %q, want THEHYDRAHASHEADS", got)
	}
}

func TestBifidRoundTrip_Base64Alphabet(t *testing.T) {
	plaintext := "HELLOWORLD1234"
	encrypted := BifidEncrypt(plaintext, "TESTKEY", Base64Alphabet)
	decrypted := BifidDecrypt(encrypted, "TESTKEY", Base64Alphabet)
	if decrypted != plaintext {
		t.Errorf("round trip = %q, want %q", decrypted, plaintext)
	}
}

func TestBifid_JMapsToI(t *testing.T) {
	if got, want := BifidEncrypt("JUMP", "KEY", StandardAlphabet), BifidEncrypt("IUMP", "KEY", StandardAlphabet); got != want {
		t.Errorf("encrypt(JUMP) = %q, encrypt(IUMP) = %q; want equal", got, want)
	}
}

func TestBifid_EmptyInput(t *testing.T) {
	if got := BifidDecrypt("", "KEY", StandardAlphabet); got != "" {
		t.Errorf("BifidDecrypt(empty) = %q, want empty", got)
	}
	if got := BifidDecrypt("...!!!", "KEY", StandardAlphabet); got != "" {
		t.Errorf("BifidDecrypt(punctuation only) = %q, want empty", got)
	}
}

// normalizeStandard mirrors the stage's input normalization for building
// round-trip expectations: uppercase, J to I, non-alphabet stripped.
func normalizeStandard(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r == 'J' {
			r = 'I'
		}
		if strings.ContainsRune(StandardAlphabet, r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Property-based test: decrypt inverts encrypt modulo the documented
// character-class normalization.
func TestBifid_PropertyRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("standard alphabet round trip", prop.ForAll(
		func(s, key string) bool {
			want := normalizeStandard(s)
			return BifidDecrypt(BifidEncrypt(s, key, StandardAlphabet), key, StandardAlphabet) == want
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	// Alpha input is entirely inside the base64 alphabet, which is
	// case-sensitive and applies no normalization: the round trip is exact.
	properties.Property("base64 alphabet round trip", prop.ForAll(
		func(s, key string) bool {
			return BifidDecrypt(BifidEncrypt(s, key, Base64Alphabet), key, Base64Alphabet) == s
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
