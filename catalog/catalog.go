// Package catalog embeds the curated catalogs that seed each kind's local
// index.
package catalog

import (
	"bytes"
	_ "embed"

	"github.com/fwojciec/typeahead"
	"github.com/fwojciec/typeahead/toml"
)

var (
	//go:embed cities.toml
	citiesTOML []byte

	//go:embed artists.toml
	artistsTOML []byte
)

// Cities returns the built-in city catalog, grouped by country.
func Cities() (*typeahead.Catalog, error) {
	return toml.ParseCatalog(bytes.NewReader(citiesTOML))
}

// Artists returns the built-in artist catalog, grouped by genre.
func Artists() (*typeahead.Catalog, error) {
	return toml.ParseCatalog(bytes.NewReader(artistsTOML))
}

// ForKind returns the built-in catalog for kind.
// Returns EINVALID for unknown kinds.
func ForKind(kind typeahead.Kind) (*typeahead.Catalog, error) {
	switch kind {
	case typeahead.KindCity:
		return Cities()
	case typeahead.KindArtist:
		return Artists()
	}
	return nil, typeahead.Errorf(typeahead.EINVALID, "no catalog for kind %q", kind)
}
