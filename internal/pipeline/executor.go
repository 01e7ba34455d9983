package pipeline

import (
	"github.com/solatis/pipecrack/internal/stages"
	"github.com/solatis/pipecrack/internal/types"
)

/*
 * Stage execution.
 *
 * The executor threads one (payload, metadata) pair through the stage
 * chain for a single parameter tuple. It maintains a cursor into the
 * tuple, advanced once per axis-bearing stage; double_columnar consumes
 * one index and factors it into an ordered key pair (idx/n, idx%n).
 *
 * A tuple either produces exactly one candidate payload or none. Any
 * stage-local failure — payload kind mismatch, base64 decode error,
 * unusable xor key — aborts the tuple without a result and without
 * logging: failed tuples are the common case in an exhaustive search.
 *
 * Kind discipline: text-mode ciphers require a text payload; b64 is
 * strictly text in, bytes out; xor accepts either kind (text is UTF-8
 * encoded) and always emits bytes; reverse preserves the kind it is
 * given.
 */

// Metadata labels, one per parameterized stage.
const (
	MetaCaesarShift        = "caesar_shift"
	MetaRailfenceRails     = "railfence_rails"
	MetaBifidKey           = "bifid_key"
	MetaColumnarKey        = "columnar_key"
	MetaDoubleColumnarKeys = "double_columnar_keys"
	MetaXORKey             = "xor_key"
)

// Executor runs a fixed pipeline over a fixed ciphertext and dictionary
// snapshot. Immutable after construction; one instance may be shared by
// sequential calls but each worker holds its own.
type Executor struct {
	stageNames []string
	ciphertext string
	keys       []string
	alphabet   string
}

// NewExecutor builds an executor. bifidAlphabet is one of the stage
// alphabet constants; it is only consulted when the chain contains bifid.
func NewExecutor(stageNames []string, ciphertext string, keys []string, bifidAlphabet string) *Executor {
	return &Executor{
		stageNames: stageNames,
		ciphertext: ciphertext,
		keys:       keys,
		alphabet:   bifidAlphabet,
	}
}

// Run applies the pipeline for one parameter tuple. It returns the final
// payload and the metadata identifying every consumed parameter, or
// ok=false when any stage aborts the tuple.
func (e *Executor) Run(params []int) (types.Payload, types.Metadata, bool) {
	payload := types.TextPayload(e.ciphertext)
	var meta types.Metadata
	cursor := 0

	for _, st := range e.stageNames {
		var ok bool
		payload, meta, cursor, ok = e.applyStage(st, payload, meta, params, cursor)
		if !ok {
			return types.Payload{}, nil, false
		}
	}
	return payload, meta, true
}

func (e *Executor) applyStage(st string, p types.Payload, meta types.Metadata, params []int, cursor int) (types.Payload, types.Metadata, int, bool) {
	switch st {
	case stages.Caesar:
		if p.Kind != types.KindText {
			return p, meta, cursor, false
		}
		shift := params[cursor]
		meta = meta.Append(MetaCaesarShift, types.IntValue(shift))
		return types.TextPayload(stages.CaesarDecrypt(p.Text, shift)), meta, cursor + 1, true

	case stages.Railfence:
		if p.Kind != types.KindText {
			return p, meta, cursor, false
		}
		rails := params[cursor] + stages.MinRails
		meta = meta.Append(MetaRailfenceRails, types.IntValue(rails))
		return types.TextPayload(stages.RailfenceDecrypt(p.Text, rails)), meta, cursor + 1, true

	case stages.Bifid:
		if p.Kind != types.KindText {
			return p, meta, cursor, false
		}
		key := e.keys[params[cursor]]
		meta = meta.Append(MetaBifidKey, types.StrValue(key))
		return types.TextPayload(stages.BifidDecrypt(p.Text, key, e.alphabet)), meta, cursor + 1, true

	case stages.Columnar:
		if p.Kind != types.KindText {
			return p, meta, cursor, false
		}
		key := e.keys[params[cursor]]
		meta = meta.Append(MetaColumnarKey, types.StrValue(key))
		return types.TextPayload(stages.ColumnarDecrypt(p.Text, key)), meta, cursor + 1, true

	case stages.DoubleColumnar:
		if p.Kind != types.KindText {
			return p, meta, cursor, false
		}
		n := len(e.keys)
		pairIdx := params[cursor]
		key1, key2 := e.keys[pairIdx/n], e.keys[pairIdx%n]
		meta = meta.Append(MetaDoubleColumnarKeys, types.PairValue(key1, key2))
		return types.TextPayload(stages.DoubleColumnarDecrypt(p.Text, key1, key2)), meta, cursor + 1, true

	case stages.Base64:
		if p.Kind != types.KindText {
			return p, meta, cursor, false
		}
		decoded, err := stages.DecodeBase64(p.Text)
		if err != nil {
			return p, meta, cursor, false
		}
		return types.BytesPayload(decoded), meta, cursor, true

	case stages.XOR:
		key := e.keys[params[cursor]]
		keyBytes := stages.XORKeyBytes(key)
		if len(keyBytes) == 0 {
			return p, meta, cursor, false
		}
		meta = meta.Append(MetaXORKey, types.StrValue(key))
		return types.BytesPayload(stages.RepeatingXOR(p.Raw(), keyBytes)), meta, cursor + 1, true

	case stages.Reverse:
		if p.Kind == types.KindText {
			return types.TextPayload(stages.ReverseText(p.Text)), meta, cursor, true
		}
		return types.BytesPayload(stages.ReverseBytes(p.Bytes)), meta, cursor, true
	}

	// Parse guarantees only known stages reach the executor.
	return p, meta, cursor, false
}
