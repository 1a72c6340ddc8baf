package typeahead

// Merge combines local and remote records into one list of at most limit
// records. Local records come first in their own order, followed by remote
// records whose ID is not already present, in remote order. The result is
// never re-sorted. A limit of zero or less means DefaultCap.
func Merge(local, remote []Record, limit int) []Record {
	if limit <= 0 {
		limit = DefaultCap
	}

	merged := make([]Record, 0, min(limit, len(local)+len(remote)))
	seen := make(map[string]struct{}, limit)
	for _, list := range [][]Record{local, remote} {
		for _, r := range list {
			if len(merged) >= limit {
				return merged
			}
			if _, ok := seen[r.ID]; ok {
				continue
			}
			seen[r.ID] = struct{}{}
			merged = append(merged, r)
		}
	}
	return merged
}
