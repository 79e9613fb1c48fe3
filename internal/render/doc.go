// Package render converts decorated ADR markdown into a standalone HTML
// document: Goldmark conversion, stylesheet injection, image URL rewriting
// through the backend proxy, and the browser-side mermaid bootstrap.
package render
