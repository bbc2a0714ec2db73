package request

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// ErrMalformedBody is returned when a request body cannot be read or is not
// valid JSON for the target type.
var ErrMalformedBody = errors.New("malformed JSON body")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeJSON reads body to the end and unmarshals it into v.
func DecodeJSON(body io.Reader, v any) error {
	if body == nil {
		return ErrMalformedBody
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("%w: empty body", ErrMalformedBody)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}
