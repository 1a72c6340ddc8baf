package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fwojciec/typeahead"
	"github.com/fwojciec/typeahead/search"
)

// Run executes the interactive command.
//
// Every stdin line is the next full contents of the input field. A line
// starting with "+" or "-" selects or deselects the record id that follows
// instead. At end of input the command waits for the last query to settle.
func (c *InteractiveCmd) Run(deps *Dependencies) error {
	engine, err := deps.engine(c.Kind)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", typeahead.ErrorMessage(err))
		return err
	}

	var out sync.Mutex
	settled := make(chan search.Update, 1)
	var session *search.Session
	session = search.NewSession(engine,
		search.WithDebounce(deps.Debounce),
		search.WithLogger(deps.Logger),
		search.WithUpdateFunc(func(u search.Update) {
			out.Lock()
			printUpdate(deps.Stdout, u, session.Selection())
			out.Unlock()
			if u.State == search.StateSettled {
				offerLatest(settled, u)
			}
		}),
	)
	defer session.Close()
	deps.Logger.Debug("interactive session", "session", session.ID(), "kind", c.Kind)

	prompt := isTerminal(deps.Stdin)
	lines := scanLines(deps.Ctx, deps.Stdin)

	var last search.Token
	waiting := false
	for lines != nil {
		if prompt {
			out.Lock()
			fmt.Fprint(deps.Stdout, "> ")
			out.Unlock()
		}

		select {
		case <-deps.Ctx.Done():
			return deps.Ctx.Err()
		case line, ok := <-lines:
			if !ok {
				lines = nil
				break
			}
			if id, ok := strings.CutPrefix(line, "+"); ok {
				id = strings.TrimSpace(id)
				out.Lock()
				if session.Select(id) {
					fmt.Fprintf(deps.Stdout, "selected %s (%s)\n", id, strings.Join(session.Selection(), ", "))
				}
				out.Unlock()
				continue
			}
			if id, ok := strings.CutPrefix(line, "-"); ok {
				id = strings.TrimSpace(id)
				out.Lock()
				if session.Deselect(id) {
					fmt.Fprintf(deps.Stdout, "deselected %s (%s)\n", id, strings.Join(session.Selection(), ", "))
				}
				out.Unlock()
				continue
			}
			last = session.Input(line)
			waiting = !typeahead.IsBlank(line)
		}
	}

	for waiting {
		select {
		case <-deps.Ctx.Done():
			return deps.Ctx.Err()
		case u := <-settled:
			waiting = u.Token <= last
		}
	}
	session.Wait()
	return nil
}

// scanLines streams lines from r until EOF, a read error or ctx is done.
func scanLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// offerLatest replaces any unread value in ch with u.
func offerLatest(ch chan search.Update, u search.Update) {
	for {
		select {
		case ch <- u:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

func printUpdate(w io.Writer, u search.Update, selected []string) {
	switch u.State {
	case search.StateIdle:
		fmt.Fprintln(w, "(cleared)")
		return
	case search.StateLocalResolved, search.StateSettled:
	default:
		return
	}

	fmt.Fprintf(w, "[%s] %q: %d result(s)\n", u.State, u.Query, len(u.Records))
	if len(u.Records) > 0 {
		fmt.Fprintln(w, renderRecords(u.Records, selected))
	}
}
