// Package fuzzy provides an in-memory implementation of typeahead.Index with
// typo-tolerant matching over a curated catalog.
//
// Subsequence scoring comes from github.com/sahilm/fuzzy and edit-distance
// tolerance from github.com/lithammer/fuzzysearch.
package fuzzy

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/typeahead"
	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"
)

// DefaultLimit is the maximum number of records returned by Search.
const DefaultLimit = typeahead.DefaultCap

// groupWeight scales matches against the group field so that a name match
// always outranks an equally good group match.
const groupWeight = 0.5

// Ensure Index implements typeahead.Index at compile time.
var _ typeahead.Index = (*Index)(nil)

// Index is an immutable fuzzy index over a fixed set of records.
// It is safe for concurrent use.
type Index struct {
	entries []entry
	limit   int
}

type entry struct {
	record      typeahead.Record
	name        string
	group       string
	nameTokens  []string
	groupTokens []string
}

// Option configures an Index.
type Option func(*Index)

// WithLimit sets the maximum number of records returned by Search.
// Defaults to DefaultLimit if not specified.
func WithLimit(n int) Option {
	return func(idx *Index) {
		if n > 0 {
			idx.limit = n
		}
	}
}

// NewIndex builds an index over records. Names and group keys are
// normalized once here so Search only normalizes the query.
func NewIndex(records []typeahead.Record, opts ...Option) *Index {
	idx := &Index{
		entries: make([]entry, 0, len(records)),
		limit:   DefaultLimit,
	}
	for _, opt := range opts {
		opt(idx)
	}

	for _, r := range records {
		name := typeahead.Normalize(r.DisplayName)
		group := typeahead.Normalize(r.GroupKey)
		idx.entries = append(idx.entries, entry{
			record:      r,
			name:        name,
			group:       group,
			nameTokens:  strings.Fields(name),
			groupTokens: strings.Fields(group),
		})
	}
	return idx
}

// Len returns the number of indexed records.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// candidate is a scored entry for a single query.
type candidate struct {
	entry  *entry
	prefix bool
	score  float64
}

// Search returns up to the configured limit of records matching query.
// Records whose name starts with the query come first, then higher scores,
// then alphabetical by name. Identical input always yields identical output.
func (idx *Index) Search(query string) []typeahead.Record {
	q := typeahead.Normalize(query)
	if q == "" || len(idx.entries) == 0 {
		return nil
	}
	queryTokens := strings.Fields(q)

	nameSubseq := subsequenceScores(q, nameSource(idx.entries))
	groupSubseq := subsequenceScores(q, groupSource(idx.entries))

	var candidates []candidate
	for i := range idx.entries {
		e := &idx.entries[i]

		score := matchScore(q, queryTokens, e.name, e.nameTokens, nameSubseq[i])
		if gs := groupWeight * matchScore(q, queryTokens, e.group, e.groupTokens, groupSubseq[i]); gs > score {
			score = gs
		}
		if score <= 0 {
			continue
		}
		candidates = append(candidates, candidate{
			entry:  e,
			prefix: strings.HasPrefix(e.name, q),
			score:  score,
		})
	}

	slices.SortFunc(candidates, compareCandidates)

	n := min(len(candidates), idx.limit)
	results := make([]typeahead.Record, n)
	for i := range n {
		results[i] = candidates[i].entry.record
		results[i].Rank = i
	}
	return results
}

func compareCandidates(a, b candidate) int {
	if a.prefix != b.prefix {
		if a.prefix {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(b.score, a.score); c != 0 {
		return c
	}
	if c := strings.Compare(a.entry.name, b.entry.name); c != 0 {
		return c
	}
	return strings.Compare(a.entry.record.ID, b.entry.record.ID)
}

// matchScore rates how well the normalized query matches a normalized
// field, from 0 (no match) to 1 (exact). subseq is the sahilm score for the
// field, or nil when the query is not a subsequence of it.
func matchScore(q string, queryTokens []string, field string, fieldTokens []string, subseq *int) float64 {
	if field == "" {
		return 0
	}
	switch {
	case field == q:
		return 1
	case strings.HasPrefix(field, q):
		return 0.9 + 0.05*ratio(q, field)
	case hasTokenPrefix(fieldTokens, q):
		return 0.8
	case strings.Contains(field, q):
		return 0.7
	case len(queryTokens) > 1 && tokensMatchAnyOrder(queryTokens, fieldTokens):
		return 0.65
	}

	if d, ok := prefixDistance(q, field, fieldTokens); ok {
		return 0.6 - 0.1*float64(d)
	}

	if subseq != nil {
		perRune := float64(*subseq) / float64(10*utf8.RuneCountInString(q))
		return 0.2 + 0.2*clamp01(perRune)
	}
	return 0
}

// tolerance is the number of edits allowed for a query of the given length.
func tolerance(runes int) int {
	switch {
	case runes >= 8:
		return 2
	case runes >= 4:
		return 1
	default:
		return 0
	}
}

// prefixDistance compares q with the leading runes of field and of each
// field token, allowing the compared prefix to be one rune shorter or
// longer than q so a dropped or doubled letter costs a single edit.
func prefixDistance(q, field string, fieldTokens []string) (int, bool) {
	qr := utf8.RuneCountInString(q)
	maxEdits := tolerance(qr)
	if maxEdits == 0 {
		return 0, false
	}

	best := -1
	targets := append([]string{field}, fieldTokens...)
	for _, target := range targets {
		runes := []rune(target)
		for n := qr - 1; n <= qr+1; n++ {
			if n <= 0 || n > len(runes) {
				continue
			}
			d := fuzzy.LevenshteinDistance(q, string(runes[:n]))
			if best < 0 || d < best {
				best = d
			}
		}
	}
	if best < 0 || best > maxEdits {
		return 0, false
	}
	return best, true
}

func hasTokenPrefix(tokens []string, q string) bool {
	for _, tok := range tokens {
		if strings.HasPrefix(tok, q) {
			return true
		}
	}
	return false
}

// tokensMatchAnyOrder reports whether every query token is a prefix of a
// distinct field token, regardless of order.
func tokensMatchAnyOrder(queryTokens, fieldTokens []string) bool {
	if len(queryTokens) > len(fieldTokens) {
		return false
	}
	used := make([]bool, len(fieldTokens))
	for _, qt := range queryTokens {
		found := false
		for i, ft := range fieldTokens {
			if !used[i] && strings.HasPrefix(ft, qt) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func ratio(q, field string) float64 {
	return float64(utf8.RuneCountInString(q)) / float64(utf8.RuneCountInString(field))
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

// subsequenceScores runs sahilm/fuzzy over src and returns the match score
// per entry index, nil where the query is not a subsequence.
func subsequenceScores(q string, src sahilm.Source) []*int {
	scores := make([]*int, src.Len())
	for _, m := range sahilm.FindFrom(q, src) {
		score := m.Score
		scores[m.Index] = &score
	}
	return scores
}

// nameSource adapts entry names to sahilm.Source.
type nameSource []entry

func (s nameSource) String(i int) string { return s[i].name }
func (s nameSource) Len() int            { return len(s) }

// groupSource adapts entry group keys to sahilm.Source.
type groupSource []entry

func (s groupSource) String(i int) string { return s[i].group }
func (s groupSource) Len() int            { return len(s) }
