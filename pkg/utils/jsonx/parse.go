// ABOUTME: JSON decoding that reports failures as Results instead of bare errors
// ABOUTME: Used wherever persisted or transmitted JSON re-enters the service

package jsonx

import (
	"encoding/json"

	"podclean-api/core/errors"
)

// TypeParseJSON tags data that could not be decoded.
const TypeParseJSON = "parse_json"

// maxEchoedBytes bounds how much of the offending input is kept in the payload.
const maxEchoedBytes = 512

// Parse decodes data into a T.
func Parse[T any](data []byte) errors.Result[T] {
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return errors.FromNativeError[T](err, &errors.RuntimeError{
			Type:    TypeParseJSON,
			Message: "Unable to parse JSON",
			Payload: map[string]any{"data": truncate(data)},
		})
	}
	return errors.Ok(value)
}

// ParseString is Parse for string input.
func ParseString[T any](data string) errors.Result[T] {
	return Parse[T]([]byte(data))
}

func truncate(data []byte) string {
	if len(data) <= maxEchoedBytes {
		return string(data)
	}
	return string(data[:maxEchoedBytes]) + "..."
}
