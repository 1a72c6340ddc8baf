package typeahead

// Origin identifies which source produced a Record.
type Origin string

// Origin constants.
const (
	OriginLocal          Origin = "local"
	OriginRemotePrimary  Origin = "remote-primary"
	OriginRemoteFallback Origin = "remote-fallback"
)

// Record is a single searchable candidate shown in an autocomplete list.
//
// ID is the only identity used for deduplication. Records from different
// sources that describe the same real-world entity are distinct unless their
// IDs happen to coincide.
type Record struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"displayName"`
	GroupKey    string  `json:"groupKey"`
	Origin      Origin  `json:"origin"`
	Rank        int     `json:"rank"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Popularity  float64 `json:"popularity,omitempty"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.ID == "" {
		return Errorf(EINVALID, "record ID required")
	}
	if r.DisplayName == "" {
		return Errorf(EINVALID, "record display name required")
	}
	return nil
}
