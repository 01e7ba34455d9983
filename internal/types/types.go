// Package types provides domain models shared across pipecrack components.
//
// types.go and errors.go use only the standard library. ids.go imports
// uuid, so the package as a whole depends on it; its ID helpers are called
// only on the results store path.
package types

import (
	"fmt"
	"strings"
)

// PayloadKind tags the value currently flowing through a pipeline.
type PayloadKind int

const (
	// KindText is a candidate plaintext string.
	KindText PayloadKind = iota
	// KindBytes is raw binary output, e.g. after a base64 or xor stage.
	KindBytes
)

// String returns the lowercase kind name used in diagnostics.
func (k PayloadKind) String() string {
	if k == KindBytes {
		return "bytes"
	}
	return "text"
}

// Payload is the tagged value threaded through a pipeline run.
// The tag changes only when a stage declares it so (b64 goes Text->Bytes);
// stages never mutate their input, they return a fresh Payload.
type Payload struct {
	Kind  PayloadKind
	Text  string
	Bytes []byte
}

// TextPayload wraps a string as a text payload.
func TextPayload(s string) Payload {
	return Payload{Kind: KindText, Text: s}
}

// BytesPayload wraps a byte slice as a bytes payload.
func BytesPayload(b []byte) Payload {
	return Payload{Kind: KindBytes, Bytes: b}
}

// Raw returns the payload content as bytes. Text payloads are UTF-8
// encoded, which is how final candidates enter the scorer.
func (p Payload) Raw() []byte {
	if p.Kind == KindText {
		return []byte(p.Text)
	}
	return p.Bytes
}

// Len returns the payload length in bytes.
func (p Payload) Len() int {
	if p.Kind == KindText {
		return len(p.Text)
	}
	return len(p.Bytes)
}

// MetaKind discriminates the value stored in a metadata entry.
type MetaKind int

const (
	// MetaInt holds an integer parameter (shift count, rail count).
	MetaInt MetaKind = iota
	// MetaStr holds a single dictionary key.
	MetaStr
	// MetaStrPair holds an ordered key pair (double columnar).
	MetaStrPair
)

// MetaValue is the small value type metadata entries carry.
type MetaValue struct {
	Kind MetaKind
	Int  int
	Str  string
	Pair [2]string
}

// IntValue builds an integer metadata value.
func IntValue(n int) MetaValue {
	return MetaValue{Kind: MetaInt, Int: n}
}

// StrValue builds a string metadata value.
func StrValue(s string) MetaValue {
	return MetaValue{Kind: MetaStr, Str: s}
}

// PairValue builds an ordered string-pair metadata value.
func PairValue(a, b string) MetaValue {
	return MetaValue{Kind: MetaStrPair, Pair: [2]string{a, b}}
}

// String renders the value the way hit lines print it.
func (v MetaValue) String() string {
	switch v.Kind {
	case MetaStr:
		return fmt.Sprintf("%q", v.Str)
	case MetaStrPair:
		return fmt.Sprintf("(%q, %q)", v.Pair[0], v.Pair[1])
	default:
		return fmt.Sprintf("%d", v.Int)
	}
}

// MetaEntry is one recorded stage parameter.
type MetaEntry struct {
	Key   string
	Value MetaValue
}

// Metadata is the append-only ordered record of the parameters a pipeline
// run consumed. Entries are appended in stage order and reported verbatim
// so a hit can be reproduced.
type Metadata []MetaEntry

// Append returns the metadata extended with one entry. Callers always use
// the return value, never the receiver.
func (m Metadata) Append(key string, value MetaValue) Metadata {
	return append(m, MetaEntry{Key: key, Value: value})
}

// Clone returns an independent copy. Workers snapshot metadata into hits
// so later tuples cannot alias the recorded entries.
func (m Metadata) Clone() Metadata {
	if len(m) == 0 {
		return nil
	}
	out := make(Metadata, len(m))
	copy(out, m)
	return out
}

// String renders the metadata in hit-line form, e.g.
// {caesar_shift: 3, xor_key: "KEY"}.
func (m Metadata) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Key)
		sb.WriteString(": ")
		sb.WriteString(e.Value.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// StageAxis is one dimension of the parameter space: the stage that owns it
// and the number of distinct parameter values it contributes.
type StageAxis struct {
	Name string
	Size int
}

// Hit is a scored candidate at or above the reporting threshold.
type Hit struct {
	Score float64
	Meta  Metadata
}
