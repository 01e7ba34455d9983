// Package pipeline models cipher-stage chains and their parameter space.
//
// A pipeline is an ordered, non-empty list of stage names. Each
// parameterized stage contributes one axis to the search space; the axes'
// cardinalities in pipeline order form the radix vector that the
// enumerator in radix.go decodes indices against. The executor in
// executor.go threads a payload through the chain for one parameter
// tuple.
//
// Validation happens up front: Parse rejects unknown stages, Axes rejects
// an empty dictionary for key-requiring stages, and SpaceSize rejects
// parameter spaces that overflow int64, all before any work is dispatched.
package pipeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/solatis/pipecrack/internal/stages"
	"github.com/solatis/pipecrack/internal/types"
)

// Delimiter separates stage names in a pipeline string.
const Delimiter = ">"

// Parse splits a pipeline string into validated stage names. Segments are
// trimmed; an empty string, an empty segment, or an unknown stage name is
// rejected.
func Parse(s string) ([]string, error) {
	parts := strings.Split(s, Delimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			return nil, fmt.Errorf("%w: empty stage in %q", types.ErrInvalidPipeline, s)
		}
		if !stages.Known(name) {
			return nil, fmt.Errorf("%w: %q (valid: %s)",
				types.ErrUnknownStage, name, strings.Join(stages.Names(), ", "))
		}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty pipeline", types.ErrInvalidPipeline)
	}
	return out, nil
}

// Axes computes the parameter axes for a pipeline, in pipeline order.
// Stages without parameters contribute no axis. A key-requiring stage
// with zero dictionary keys is an error.
func Axes(stageNames []string, nKeys int) ([]types.StageAxis, error) {
	var axes []types.StageAxis
	for _, st := range stageNames {
		switch st {
		case stages.Caesar:
			axes = append(axes, types.StageAxis{Name: st, Size: stages.CaesarShifts})
		case stages.Railfence:
			axes = append(axes, types.StageAxis{Name: st, Size: stages.MaxRails - stages.MinRails + 1})
		case stages.Bifid, stages.Columnar, stages.XOR:
			if nKeys == 0 {
				return nil, fmt.Errorf("%w: stage %q", types.ErrEmptyDictionary, st)
			}
			axes = append(axes, types.StageAxis{Name: st, Size: nKeys})
		case stages.DoubleColumnar:
			if nKeys == 0 {
				return nil, fmt.Errorf("%w: stage %q", types.ErrEmptyDictionary, st)
			}
			pairs := nKeys * nKeys
			if pairs/nKeys != nKeys {
				return nil, fmt.Errorf("%w: %d^2 key pairs", types.ErrSpaceTooLarge, nKeys)
			}
			axes = append(axes, types.StageAxis{Name: st, Size: pairs})
		case stages.Base64, stages.Reverse:
			// No parameter, no axis.
		}
	}
	return axes, nil
}

// Radix extracts the radix vector from the axes.
func Radix(axes []types.StageAxis) []int {
	radix := make([]int, len(axes))
	for i, a := range axes {
		radix[i] = a.Size
	}
	return radix
}

// SpaceSize returns the parameter-space size: the product of the radix
// vector, 1 when there are no axes. Overflow past int64 is rejected.
func SpaceSize(axes []types.StageAxis) (int64, error) {
	total := int64(1)
	for _, a := range axes {
		size := int64(a.Size)
		if size <= 0 {
			return 0, fmt.Errorf("%w: axis %s has size %d", types.ErrSpaceTooLarge, a.Name, a.Size)
		}
		if total > math.MaxInt64/size {
			return 0, fmt.Errorf("%w: product exceeds int64", types.ErrSpaceTooLarge)
		}
		total *= size
	}
	return total, nil
}

// AlphabetByName maps the CLI bifid-alphabet flag to the alphabet string.
func AlphabetByName(name string) (string, error) {
	switch name {
	case "standard":
		return stages.StandardAlphabet, nil
	case "base64":
		return stages.Base64Alphabet, nil
	default:
		return "", fmt.Errorf("%w: %q (expected standard or base64)", types.ErrInvalidAlphabet, name)
	}
}
