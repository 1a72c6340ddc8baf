// Package search orchestrates incremental autocomplete queries.
//
// An Engine runs the resolution cascade for one query: local index first,
// then the primary remote resolver, then the fallback resolver. A Session
// drives an Engine from a stream of keystrokes: input is debounced, local
// results are published immediately, and remote results are merged in
// later only if no newer input has arrived in the meantime.
package search

import "fmt"

// State is a step of the per-session search state machine.
type State int

// State constants, in the order a full cycle visits them.
const (
	StateIdle State = iota
	StateDebouncing
	StateLocalResolved
	StateRemoteChecking
	StateRemotePrimaryPending
	StateRemoteFallbackPending
	StateSettled
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDebouncing:
		return "debouncing"
	case StateLocalResolved:
		return "local-resolved"
	case StateRemoteChecking:
		return "remote-checking"
	case StateRemotePrimaryPending:
		return "remote-primary-pending"
	case StateRemoteFallbackPending:
		return "remote-fallback-pending"
	case StateSettled:
		return "settled"
	}
	return fmt.Sprintf("state(%d)", int(s))
}
