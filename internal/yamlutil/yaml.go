// Package yamlutil wraps YAML parsing to isolate the external dependency,
// so the underlying library can change without touching callers.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (1MB).
const MaxInputSize = 1 << 20

var (
	ErrEmptyInput     = errors.New("yamlutil: empty input")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validate(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes YAML into v, tolerating unknown fields.
func Unmarshal(data []byte, v any) error {
	if err := validate(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict decodes YAML into v, rejecting unknown fields. Used for
// config files where a typo should fail loudly.
func UnmarshalStrict(data []byte, v any) error {
	if err := validate(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
