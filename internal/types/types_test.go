package types

import (
	"testing"
)

func TestMetadataString(t *testing.T) {
	tests := []struct {
		name     string
		meta     Metadata
		expected string
	}{
		{
			name:     "empty",
			meta:     nil,
			expected: "{}",
		},
		{
			name:     "int value",
			meta:     Metadata{{Key: "caesar_shift", Value: IntValue(3)}},
			expected: "{caesar_shift: 3}",
		},
		{
			name: "mixed values in order",
			meta: Metadata{
				{Key: "caesar_shift", Value: IntValue(3)},
				{Key: "xor_key", Value: StrValue("KEY")},
			},
			expected: `{caesar_shift: 3, xor_key: "KEY"}`,
		},
		{
			name:     "string pair",
			meta:     Metadata{{Key: "double_columnar_keys", Value: PairValue("ZOMBIE", "HORSE")}},
			expected: `{double_columnar_keys: ("ZOMBIE", "HORSE")}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMetadataClone(t *testing.T) {
	m := Metadata{{Key: "caesar_shift", Value: IntValue(3)}}
	c := m.Clone()
	c[0].Value = IntValue(9)
	if m[0].Value.Int != 3 {
		t.Errorf("Clone shares storage with original")
	}
	if got := Metadata(nil).Clone(); got != nil {
		t.Errorf("Clone(nil) = %v, want nil", got)
	}
}

func TestPayload(t *testing.T) {
	text := TextPayload("hello")
	if text.Kind != KindText || string(text.Raw()) != "hello" || text.Len() != 5 {
		t.Errorf("TextPayload = %+v", text)
	}
	raw := BytesPayload([]byte{0x01, 0x02})
	if raw.Kind != KindBytes || raw.Len() != 2 {
		t.Errorf("BytesPayload = %+v", raw)
	}
	if KindText.String() != "text" || KindBytes.String() != "bytes" {
		t.Errorf("kind names wrong: %v %v", KindText, KindBytes)
	}
}

func TestRunID(t *testing.T) {
	id := NewRunID()
	parsed, err := ParseRunID(string(id))
	if err != nil {
		t.Fatalf("ParseRunID(%s) error = %v", id, err)
	}
	if parsed != id {
		t.Errorf("ParseRunID() = %v, want %v", parsed, id)
	}
	if RunIDTime(id).IsZero() {
		t.Errorf("RunIDTime() is zero for a fresh UUIDv7")
	}
	if _, err := ParseRunID("not-a-uuid"); err == nil {
		t.Errorf("ParseRunID(garbage) error = nil, want error")
	}
}
