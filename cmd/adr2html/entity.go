package main

import (
	"errors"
	"fmt"
	"os"

	adr2html "github.com/adrkit/go-adr2html"
	"github.com/adrkit/go-adr2html/internal/fileutil"
	"github.com/adrkit/go-adr2html/internal/yamlutil"
)

// ErrEntityParse indicates a catalog descriptor could not be decoded.
var ErrEntityParse = errors.New("failed to parse entity descriptor")

// entityDescriptor mirrors the catalog descriptor fields needed to resolve
// ADR locations. Unknown fields (apiVersion, spec, ...) are ignored.
type entityDescriptor struct {
	Kind     string `yaml:"kind"`
	Metadata struct {
		Name        string            `yaml:"name"`
		Namespace   string            `yaml:"namespace"`
		Annotations map[string]string `yaml:"annotations"`
	} `yaml:"metadata"`
}

// loadEntity reads a catalog descriptor file into an Entity.
func loadEntity(path string) (adr2html.Entity, error) {
	if !fileutil.FileExists(path) {
		return adr2html.Entity{}, fmt.Errorf("no such file: %s", path)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return adr2html.Entity{}, fmt.Errorf("reading entity descriptor: %w", err)
	}

	var desc entityDescriptor
	if err := yamlutil.Unmarshal(data, &desc); err != nil {
		return adr2html.Entity{}, fmt.Errorf("%w: %v", ErrEntityParse, err)
	}

	return adr2html.Entity{
		Kind:        desc.Kind,
		Namespace:   desc.Metadata.Namespace,
		Name:        desc.Metadata.Name,
		Annotations: desc.Metadata.Annotations,
	}, nil
}

// resolveEntityLocation maps an ADR file name to its URL under the entity's
// ADR location annotation.
func resolveEntityLocation(entityPath, fileName string) (string, error) {
	entity, err := loadEntity(entityPath)
	if err != nil {
		return "", err
	}
	return adr2html.ADRFileLocationURL(entity, fileName)
}
