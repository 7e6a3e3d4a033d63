// Package compat is the legacy-compatible boundary in front of the family
// engines. It selects between the v4 engines and the v3 legacy engine per
// request, and converts typed results to and from the loosely typed maps
// older callers exchange.
//
// Nothing behind this package sees untyped data: MapDevice parses the map
// into a domain.MappingInput first and serialises the typed result last.
package compat
