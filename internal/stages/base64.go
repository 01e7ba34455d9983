package stages

import "encoding/base64"

// DecodeBase64 performs a strict standard-alphabet base64 decode. Invalid
// characters or padding return an error; the executor drops the tuple.
// There is no auto-detection of text output: decoded data is always bytes.
func DecodeBase64(text string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(text)
}
