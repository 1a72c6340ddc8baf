package search

import "sync"

// Token identifies one search cycle. Tokens increase monotonically within
// a Fence.
type Token uint64

// Fence tracks the most recently issued query. Asynchronous work captures
// the token it was started with and checks IsCurrent immediately before
// touching shared state; work for a superseded token is discarded.
//
// The zero value is ready to use and is safe for concurrent use.
type Fence struct {
	mu      sync.Mutex
	current Token
	query   string
}

// Begin issues a new token for query, superseding every earlier token.
func (f *Fence) Begin(query string) Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current++
	f.query = query
	return f.current
}

// Advance supersedes every earlier token without starting a new query.
// It is used when input changes before a query is issued.
func (f *Fence) Advance() Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current++
	f.query = ""
	return f.current
}

// IsCurrent reports whether t is the most recently issued token.
func (f *Fence) IsCurrent(t Token) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return t == f.current
}

// Current returns the latest token and the query it was issued for.
// The query is empty after Advance.
func (f *Fence) Current() (Token, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, f.query
}
