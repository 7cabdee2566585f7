// Package webscrape provides a recursive website scraper.
// It starts from a seed URL, fetches each resource, stores it on disk,
// extracts every hyperlink it references, and repeats for newly
// discovered links until none remain.
//
// This package contains domain types, interfaces, and the URL primitives
// shared by every implementation, following Ben Johnson's Standard Package
// Layout. Implementations live in subdirectories named after their primary
// dependency (e.g., http/, html/, fs/, bloom/).
package webscrape
