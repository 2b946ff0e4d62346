// Package schemascan extracts structured data (JSON-LD, Open Graph, Twitter
// Card and Microdata) from web pages, synthesizes schema.org items when a page
// carries none, and validates item collections against schema.org
// conventions.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package schemascan
