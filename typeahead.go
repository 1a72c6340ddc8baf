// Package typeahead provides incremental, multi-source search for
// autocomplete fields. A keystroke stream is debounced, matched against a
// local curated catalog for an instant first paint, and then resolved
// against remote search APIs (a credentialed primary and a credential-free
// fallback) whose results are merged in behind the local ones.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fuzzy/, lru/, http/), and the
// orchestration lives in search/.
package typeahead

// Kind identifies an independent search domain. Each kind owns its own
// catalog, remote backends and result cache.
type Kind string

// Kind constants.
const (
	KindCity   Kind = "city"
	KindArtist Kind = "artist"
)

// ParseKind returns the Kind named by s.
// Returns EINVALID for unknown kinds.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCity, KindArtist:
		return Kind(s), nil
	}
	return "", Errorf(EINVALID, "unknown search kind %q", s)
}

// DefaultCap is the number of records shown for a query when no cap is configured.
const DefaultCap = 8
