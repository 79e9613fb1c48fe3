package adr2html

import "errors"

// Sentinel errors for library operations.
var (
	// Failure categories tracked independently by Result.
	ErrFetch     = errors.New("document fetch failed")
	ErrDiscovery = errors.New("backend discovery failed")
	ErrDecorate  = errors.New("decorator pipeline failed")

	// Document source errors.
	ErrEmptyLocation    = errors.New("location URL cannot be empty")
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// Front matter errors.
	ErrFrontmatter = errors.New("front matter parsing failed")

	// Diagram rendering errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrDiagramRender  = errors.New("diagram rendering failed")

	// Entity location errors.
	ErrNoADRLocation     = errors.New("entity has no ADR location annotation")
	ErrLocationResolve   = errors.New("ADR location resolution failed")
	ErrNoBackendBaseURL  = errors.New("no base URL configured for plugin")
	ErrEmptyDiscoveryURL = errors.New("discovery endpoint cannot be empty")
)
