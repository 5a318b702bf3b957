// Package wikiextract extracts structured text from rendered wiki pages.
// A page is loaded by a rendering engine, a named set of structural queries
// is evaluated against its document tree, and the matched text is persisted
// as a record named after the page title.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package wikiextract
