package types

import "errors"

// Sentinel errors for pipecrack configuration and validation.
//
// Stage-local failures during the search (bad base64 padding, kind
// mismatches) are not errors: those tuples are silently dropped, so no
// sentinels exist for them.
var (
	// ErrInvalidPipeline indicates an empty or malformed pipeline string.
	ErrInvalidPipeline = errors.New("invalid pipeline")

	// ErrUnknownStage indicates a stage name outside the supported set.
	ErrUnknownStage = errors.New("unknown pipeline stage")

	// ErrEmptyDictionary indicates a key-requiring stage with zero keys loaded.
	ErrEmptyDictionary = errors.New("pipeline requires keys but dictionary is empty")

	// ErrSpaceTooLarge indicates the parameter-space size overflows int64.
	ErrSpaceTooLarge = errors.New("parameter space exceeds maximum size")

	// ErrInvalidAlphabet indicates an unsupported bifid alphabet name.
	ErrInvalidAlphabet = errors.New("invalid bifid alphabet")
)
