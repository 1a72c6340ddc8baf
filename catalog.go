package typeahead

import "strings"

// Catalog is the curated dataset behind a local index: a list of groups
// (a country for cities, a genre for artists), each naming its members.
type Catalog struct {
	Kind   Kind           `toml:"kind"`
	Groups []CatalogGroup `toml:"group"`
}

// CatalogGroup is one group of a Catalog.
type CatalogGroup struct {
	Key   string   `toml:"key"`
	Names []string `toml:"names"`
}

// Validate returns an error if the catalog contains invalid fields.
func (c *Catalog) Validate() error {
	if c.Kind == "" {
		return Errorf(EINVALID, "catalog kind required")
	}
	if _, err := ParseKind(string(c.Kind)); err != nil {
		return err
	}
	for i, g := range c.Groups {
		if IsBlank(g.Key) {
			return Errorf(EINVALID, "catalog group %d: key required", i)
		}
	}
	return nil
}

// Records flattens the catalog into local-origin records in catalog order.
// Blank names are skipped and a name repeated within the same group is
// kept only once.
func (c *Catalog) Records() []Record {
	var records []Record
	seen := make(map[string]bool)
	for _, g := range c.Groups {
		group := strings.TrimSpace(g.Key)
		for _, name := range g.Names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			id := recordID(c.Kind, group, name)
			if seen[id] {
				continue
			}
			seen[id] = true
			records = append(records, Record{
				ID:          id,
				DisplayName: name,
				GroupKey:    group,
				Origin:      OriginLocal,
				Rank:        len(records),
			})
		}
	}
	return records
}

// recordID builds a stable id such as "city:colombia/bogota".
func recordID(kind Kind, group, name string) string {
	slug := func(s string) string {
		return strings.ReplaceAll(Normalize(s), " ", "-")
	}
	return string(kind) + ":" + slug(group) + "/" + slug(name)
}
