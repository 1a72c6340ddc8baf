// Package toml reads search catalogs written in TOML.
//
// A catalog file names its kind and lists groups of names:
//
//	kind = "city"
//
//	[[group]]
//	key = "Colombia"
//	names = ["Bogotá", "Medellín", "Cali"]
package toml

import (
	"errors"
	"io"

	"github.com/fwojciec/typeahead"
	gotoml "github.com/pelletier/go-toml/v2"
)

// ParseCatalog decodes and validates a catalog from r.
// Returns EINVALID for malformed input, unknown keys or invalid fields.
func ParseCatalog(r io.Reader) (*typeahead.Catalog, error) {
	var c typeahead.Catalog
	dec := gotoml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, decodeError(err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func decodeError(err error) error {
	var derr *gotoml.DecodeError
	if errors.As(err, &derr) {
		row, col := derr.Position()
		return typeahead.Errorf(typeahead.EINVALID, "catalog line %d column %d: %s", row, col, derr.Error())
	}
	var serr *gotoml.StrictMissingError
	if errors.As(err, &serr) {
		return typeahead.Errorf(typeahead.EINVALID, "catalog: %s", serr.Error())
	}
	return typeahead.Errorf(typeahead.EINVALID, "catalog: %s", err.Error())
}
