package yamlutil

import (
	"errors"
	"strings"
	"testing"
)

type testConfig struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		if err := Unmarshal([]byte("name: adr\ncount: 3\n"), &cfg); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if cfg.Name != "adr" || cfg.Count != 3 {
			t.Errorf("Unmarshal() = %+v", cfg)
		}
	})

	t.Run("unknown fields tolerated", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		if err := Unmarshal([]byte("name: adr\nextra: true\n"), &cfg); err != nil {
			t.Errorf("Unmarshal() error = %v", err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		if err := Unmarshal(nil, &cfg); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("error = %v, want ErrEmptyInput", err)
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()

		if err := Unmarshal([]byte("name: adr"), nil); !errors.Is(err, ErrNilDestination) {
			t.Errorf("error = %v, want ErrNilDestination", err)
		}
	})

	t.Run("oversized input", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		data := []byte("name: " + strings.Repeat("x", MaxInputSize))
		if err := Unmarshal(data, &cfg); !errors.Is(err, ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})

	t.Run("malformed document", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		if err := Unmarshal([]byte("name: { not: closed"), &cfg); err == nil {
			t.Error("Unmarshal() expected error for malformed YAML")
		}
	})
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		if err := UnmarshalStrict([]byte("name: adr\n"), &cfg); err != nil {
			t.Errorf("UnmarshalStrict() error = %v", err)
		}
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		if err := UnmarshalStrict([]byte("name: adr\ntypo: 1\n"), &cfg); err == nil {
			t.Error("UnmarshalStrict() expected error for unknown field")
		}
	})
}
