package adr2html

import (
	"fmt"
	"net/url"
	"strings"
)

// Catalog annotations carrying ADR location information.
const (
	// ADRLocationAnnotation names the directory holding an entity's ADRs,
	// either as an absolute URL or relative to the entity's managed-by
	// location.
	ADRLocationAnnotation = "backstage.io/adr-location"

	// ManagedByLocationAnnotation is the location the entity descriptor was
	// read from, e.g. "url:https://github.com/org/repo/blob/main/catalog-info.yaml".
	ManagedByLocationAnnotation = "backstage.io/managed-by-location"
)

// Entity is a catalog entity descriptor, reduced to the fields the ADR
// location helpers need.
type Entity struct {
	Kind        string
	Namespace   string
	Name        string
	Annotations map[string]string
}

// HasADRs reports whether the entity declares an ADR location.
func (e Entity) HasADRs() bool {
	return e.Annotations[ADRLocationAnnotation] != ""
}

// ADRLocationURL derives the canonical URL of the directory holding the
// entity's ADRs. Relative annotation values resolve against the entity's
// managed-by location; SCM-host specifics stay opaque to this package.
func ADRLocationURL(entity Entity) (string, error) {
	location := entity.Annotations[ADRLocationAnnotation]
	if location == "" {
		return "", ErrNoADRLocation
	}
	if isAbsoluteURL(location) {
		return strings.TrimSuffix(location, "/"), nil
	}

	managedBy := entity.Annotations[ManagedByLocationAnnotation]
	// Location references carry a "<type>:" prefix; only URL locations can
	// anchor a relative ADR path.
	base, ok := strings.CutPrefix(managedBy, "url:")
	if !ok || !isAbsoluteURL(base) {
		return "", fmt.Errorf("%w: entity %s has no url managed-by location", ErrLocationResolve, entityRef(entity))
	}

	resolved, err := resolveURL(location, base)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLocationResolve, err)
	}
	return strings.TrimSuffix(resolved, "/"), nil
}

// ADRFileLocationURL derives the URL of a single ADR file under the
// entity's ADR directory.
func ADRFileLocationURL(entity Entity, filePath string) (string, error) {
	dir, err := ADRLocationURL(entity)
	if err != nil {
		return "", err
	}
	return dir + "/" + strings.TrimPrefix(filePath, "/"), nil
}

// resolveURL resolves target relative to base using standard URL reference
// resolution. The base's last path segment (the descriptor file) is
// replaced, not kept.
func resolveURL(target, base string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(ref).String(), nil
}

// entityRef formats an entity as kind:namespace/name for error messages.
func entityRef(e Entity) string {
	namespace := e.Namespace
	if namespace == "" {
		namespace = "default"
	}
	return fmt.Sprintf("%s:%s/%s", strings.ToLower(e.Kind), namespace, e.Name)
}
